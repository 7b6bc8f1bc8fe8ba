// Package projection picks the last and next booking shown on an item.
package projection

import (
	"shareit/pkg/model"
	"strings"
	"time"
)

// Policy decides which bookings are eligible for the projection.
type Policy int

const (
	// ListView, used for the owner's item listing, considers approved bookings only.
	ListView Policy = iota
	// DetailView, used for a single item, considers bookings in every status.
	DetailView
)

func (p Policy) admits(b *model.Booking) bool {
	return p == DetailView || b.Status == model.StatusApproved
}

// ApprovedOnly reports whether the policy restricts to approved bookings, for
// stores that evaluate the projection themselves.
func (p Policy) ApprovedOnly() bool {
	return p == ListView
}

// Last is the eligible booking with the latest start strictly before now.
// Equal starts resolve to the greatest id.
func Last(bookings []*model.Booking, now time.Time, policy Policy) *model.Booking {
	var best *model.Booking
	for _, b := range bookings {
		if !policy.admits(b) || !b.Start.Before(now) {
			continue
		}
		if best == nil || b.Start.After(best.Start) ||
			(b.Start.Equal(best.Start) && strings.Compare(b.ID, best.ID) > 0) {
			best = b
		}
	}
	return best
}

// Next is the eligible booking with the earliest start strictly after now.
// Equal starts resolve to the smallest id.
func Next(bookings []*model.Booking, now time.Time, policy Policy) *model.Booking {
	var best *model.Booking
	for _, b := range bookings {
		if !policy.admits(b) || !b.Start.After(now) {
			continue
		}
		if best == nil || b.Start.Before(best.Start) ||
			(b.Start.Equal(best.Start) && strings.Compare(b.ID, best.ID) < 0) {
			best = b
		}
	}
	return best
}

// Ref renders b for an item view. A nil booking stays nil.
func Ref(b *model.Booking) *model.BookingRef {
	if b == nil {
		return nil
	}
	return &model.BookingRef{ID: b.ID, BookerID: b.BookerID}
}

// ByItem groups bookings by item id.
func ByItem(bookings []*model.Booking) map[string][]*model.Booking {
	grouped := make(map[string][]*model.Booking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped
}
