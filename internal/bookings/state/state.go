// Package state classifies bookings into the buckets used by the booking
// listings and turns a listing request into a store-agnostic query.
package state

import (
	"errors"
	"fmt"
	"shareit/pkg/model"
	"time"
)

type State string

const (
	All      State = "ALL"
	Current  State = "CURRENT"
	Past     State = "PAST"
	Future   State = "FUTURE"
	Waiting  State = "WAITING"
	Rejected State = "REJECTED"
)

var ErrUnknownState = errors.New("unknown state")

var ErrInvalidPage = errors.New("invalid page")

// States lists every recognized state in declaration order.
var States = []State{All, Current, Past, Future, Waiting, Rejected}

// Parse is case-sensitive. An empty name means ALL.
func Parse(name string) (State, error) {
	if name == "" {
		return All, nil
	}
	for _, s := range States {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownState, name)
}

// Matches reports whether b falls into s at instant now. CURRENT is inclusive
// on both ends, PAST and FUTURE are strict.
func (s State) Matches(b *model.Booking, now time.Time) bool {
	switch s {
	case All:
		return true
	case Current:
		return !b.Start.After(now) && !b.End.Before(now)
	case Past:
		return b.End.Before(now)
	case Future:
		return b.Start.After(now)
	case Waiting:
		return b.Status == model.StatusWaiting
	case Rejected:
		return b.Status == model.StatusRejected
	default:
		return false
	}
}

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Order is the start-time ordering of a listing. WAITING and REJECTED list
// oldest first, every other state newest first.
func (s State) Order() Direction {
	if s == Waiting || s == Rejected {
		return Ascending
	}
	return Descending
}

// Filter returns the bookings of in that match s, in s.Order().
func (s State) Filter(in []*model.Booking, now time.Time) []*model.Booking {
	out := make([]*model.Booking, 0, len(in))
	for _, b := range in {
		if s.Matches(b, now) {
			out = append(out, b)
		}
	}
	SortByStart(out, s.Order())
	return out
}
