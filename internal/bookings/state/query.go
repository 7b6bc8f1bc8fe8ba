package state

import (
	"fmt"
	"shareit/pkg/model"
	"slices"
	"strings"
	"time"
)

// Role selects which side of a booking the actor is matched on.
type Role int

const (
	Booker Role = iota
	Owner
)

func (r Role) String() string {
	if r == Owner {
		return "owner"
	}
	return "booker"
}

// Page is a page number and size. Number is derived from an offset by floor
// division, so an offset that is not a multiple of size snaps back to the
// start of its page: from=3,size=2 is page 1, which skips 2 records, not 3.
type Page struct {
	Number int
	Size   int
}

func PageOf(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, fmt.Errorf("%w: from must not be negative, got %d", ErrInvalidPage, from)
	}
	if size <= 0 {
		return Page{}, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidPage, size)
	}
	return Page{Number: from / size, Size: size}, nil
}

func (p Page) Skip() int64 {
	return int64(p.Number) * int64(p.Size)
}

func (p Page) Limit() int64 {
	return int64(p.Size)
}

// Apply slices in to the page. Used where the listing is already in memory.
func (p Page) Apply(in []*model.Booking) []*model.Booking {
	start := int(p.Skip())
	if start >= len(in) {
		return []*model.Booking{}
	}
	end := min(start+p.Size, len(in))
	return in[start:end]
}

// Query is a booking listing request resolved against a fixed instant.
type Query struct {
	Role    Role
	ActorID string
	State   State
	Now     time.Time
	Page    Page
}

func NewQuery(role Role, actorID string, s State, now time.Time, page Page) Query {
	return Query{
		Role:    role,
		ActorID: actorID,
		State:   s,
		Now:     now,
		Page:    page,
	}
}

// Matches applies the full query predicate (actor side and state) to b.
func (q Query) Matches(b *model.Booking) bool {
	actor := b.BookerID
	if q.Role == Owner {
		actor = b.OwnerID
	}
	return actor == q.ActorID && q.State.Matches(b, q.Now)
}

// SortByStart orders bookings by start, using id as the tie-break so pages are
// stable.
func SortByStart(bookings []*model.Booking, dir Direction) {
	slices.SortStableFunc(bookings, func(a, b *model.Booking) int {
		c := a.Start.Compare(b.Start)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c * int(dir)
	})
}
