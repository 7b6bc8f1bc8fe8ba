package projection

import (
	"shareit/pkg/model"
	"testing"
	"time"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func booking(id string, startOffset time.Duration, status model.BookingStatus) *model.Booking {
	start := now.Add(startOffset)
	return &model.Booking{
		ID:       id,
		ItemID:   "item",
		BookerID: "booker-" + id,
		Start:    start,
		End:      start.Add(time.Hour),
		Status:   status,
	}
}

func id(b *model.Booking) string {
	if b == nil {
		return ""
	}
	return b.ID
}

func TestLastAndNext(t *testing.T) {
	bookings := []*model.Booking{
		booking("a1", -48*time.Hour, model.StatusApproved),
		booking("a2", -2*time.Hour, model.StatusWaiting),
		booking("a3", -24*time.Hour, model.StatusApproved),
		booking("a4", 2*time.Hour, model.StatusRejected),
		booking("a5", 24*time.Hour, model.StatusApproved),
		booking("a6", 0, model.StatusApproved),
	}

	tests := []struct {
		name     string
		policy   Policy
		wantLast string
		wantNext string
	}{
		{"list view uses approved only", ListView, "a3", "a5"},
		{"detail view uses every status", DetailView, "a2", "a4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := id(Last(bookings, now, tt.policy)); got != tt.wantLast {
				t.Errorf("Last = %q, want %q", got, tt.wantLast)
			}
			if got := id(Next(bookings, now, tt.policy)); got != tt.wantNext {
				t.Errorf("Next = %q, want %q", got, tt.wantNext)
			}
		})
	}
}

func TestStartAtNowIsNeitherLastNorNext(t *testing.T) {
	bookings := []*model.Booking{booking("a1", 0, model.StatusApproved)}

	if b := Last(bookings, now, DetailView); b != nil {
		t.Errorf("expected no last booking, got %s", b.ID)
	}
	if b := Next(bookings, now, DetailView); b != nil {
		t.Errorf("expected no next booking, got %s", b.ID)
	}
}

func TestTieBreaks(t *testing.T) {
	bookings := []*model.Booking{
		booking("b", -time.Hour, model.StatusApproved),
		booking("c", -time.Hour, model.StatusApproved),
		booking("a", -time.Hour, model.StatusApproved),
		booking("e", time.Hour, model.StatusApproved),
		booking("d", time.Hour, model.StatusApproved),
		booking("f", time.Hour, model.StatusApproved),
	}

	if got := id(Last(bookings, now, ListView)); got != "c" {
		t.Errorf("Last tie-break = %q, want greatest id c", got)
	}
	if got := id(Next(bookings, now, ListView)); got != "d" {
		t.Errorf("Next tie-break = %q, want smallest id d", got)
	}
}

func TestEmpty(t *testing.T) {
	if Last(nil, now, DetailView) != nil || Next(nil, now, DetailView) != nil {
		t.Error("expected nil projections for no bookings")
	}
	if Ref(nil) != nil {
		t.Error("expected nil ref")
	}
}

func TestRefAndByItem(t *testing.T) {
	b := booking("x", time.Hour, model.StatusApproved)
	ref := Ref(b)
	if ref.ID != "x" || ref.BookerID != "booker-x" {
		t.Errorf("unexpected ref %+v", ref)
	}

	other := booking("y", time.Hour, model.StatusApproved)
	other.ItemID = "other"
	grouped := ByItem([]*model.Booking{b, other, b})
	if len(grouped["item"]) != 2 || len(grouped["other"]) != 1 {
		t.Errorf("unexpected grouping %v", grouped)
	}
}

func TestPolicyApprovedOnly(t *testing.T) {
	if !ListView.ApprovedOnly() || DetailView.ApprovedOnly() {
		t.Error("ListView must be approved only and DetailView must not")
	}
}
