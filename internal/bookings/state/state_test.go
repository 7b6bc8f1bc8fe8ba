package state

import (
	"errors"
	"fmt"
	"math/rand"
	"shareit/pkg/model"
	"testing"
	"time"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func booking(id string, start, end time.Time, status model.BookingStatus) *model.Booking {
	return &model.Booking{ID: id, Start: start, End: end, Status: status, BookerID: "booker", OwnerID: "owner"}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    State
		wantErr bool
	}{
		{"all", "ALL", All, false},
		{"current", "CURRENT", Current, false},
		{"past", "PAST", Past, false},
		{"future", "FUTURE", Future, false},
		{"waiting", "WAITING", Waiting, false},
		{"rejected", "REJECTED", Rejected, false},
		{"empty defaults to all", "", All, false},
		{"lower case is unknown", "future", "", true},
		{"unsupported", "UNSUPPORTED_STATUS", "", true},
		{"approved is a status, not a state", "APPROVED", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownState) {
					t.Fatalf("expected ErrUnknownState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	hour := time.Hour
	tests := []struct {
		name    string
		booking *model.Booking
		matches []State
	}{
		{
			name:    "running booking",
			booking: booking("1", now.Add(-hour), now.Add(hour), model.StatusApproved),
			matches: []State{All, Current},
		},
		{
			name:    "starts exactly now",
			booking: booking("2", now, now.Add(hour), model.StatusWaiting),
			matches: []State{All, Current, Waiting},
		},
		{
			name:    "ends exactly now",
			booking: booking("3", now.Add(-hour), now, model.StatusRejected),
			matches: []State{All, Current, Rejected},
		},
		{
			name:    "finished",
			booking: booking("4", now.Add(-2*hour), now.Add(-hour), model.StatusApproved),
			matches: []State{All, Past},
		},
		{
			name:    "upcoming waiting",
			booking: booking("5", now.Add(hour), now.Add(2*hour), model.StatusWaiting),
			matches: []State{All, Future, Waiting},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := map[State]bool{}
			for _, s := range tt.matches {
				want[s] = true
			}
			for _, s := range States {
				if got := s.Matches(tt.booking, now); got != want[s] {
					t.Errorf("%s.Matches = %v, want %v", s, got, want[s])
				}
			}
		})
	}
}

func TestTemporalStatesPartitionAll(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bookings := make([]*model.Booking, 0, 500)
	for i := 0; i < 500; i++ {
		start := now.Add(time.Duration(rng.Intn(240)-120) * time.Minute)
		end := start.Add(time.Duration(rng.Intn(180)+1) * time.Minute)
		bookings = append(bookings, booking(fmt.Sprintf("%03d", i), start, end, model.StatusWaiting))
	}
	// boundary instants
	bookings = append(bookings,
		booking("b1", now, now.Add(time.Minute), model.StatusWaiting),
		booking("b2", now.Add(-time.Minute), now, model.StatusWaiting),
	)

	for _, b := range bookings {
		hits := 0
		for _, s := range []State{Current, Past, Future} {
			if s.Matches(b, now) {
				hits++
			}
		}
		if hits != 1 {
			t.Fatalf("booking %s [%s, %s] matched %d temporal states", b.ID, b.Start, b.End, hits)
		}
	}

	total := len(Current.Filter(bookings, now)) + len(Past.Filter(bookings, now)) + len(Future.Filter(bookings, now))
	if total != len(All.Filter(bookings, now)) {
		t.Errorf("CURRENT+PAST+FUTURE = %d, ALL = %d", total, len(bookings))
	}
}

func TestOrder(t *testing.T) {
	for _, s := range []State{All, Current, Past, Future} {
		if s.Order() != Descending {
			t.Errorf("%s should list newest first", s)
		}
	}
	for _, s := range []State{Waiting, Rejected} {
		if s.Order() != Ascending {
			t.Errorf("%s should list oldest first", s)
		}
	}
}

func TestFilter_SortsByStateOrder(t *testing.T) {
	early := booking("a", now.Add(time.Hour), now.Add(2*time.Hour), model.StatusWaiting)
	late := booking("b", now.Add(3*time.Hour), now.Add(4*time.Hour), model.StatusWaiting)
	in := []*model.Booking{late, early}

	future := Future.Filter(in, now)
	if future[0].ID != "b" || future[1].ID != "a" {
		t.Errorf("FUTURE should be start descending, got %s,%s", future[0].ID, future[1].ID)
	}

	waiting := Waiting.Filter(in, now)
	if waiting[0].ID != "a" || waiting[1].ID != "b" {
		t.Errorf("WAITING should be start ascending, got %s,%s", waiting[0].ID, waiting[1].ID)
	}
}
