package model

import (
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Booking stores OwnerID alongside ItemID so that visibility checks and owner
// listings are single predicate queries. Item ownership never changes.
type Booking struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty"`
	Start     time.Time     `json:"start" bson:"start"`
	End       time.Time     `json:"end" bson:"end"`
	ItemID    string        `json:"item_id" bson:"item_id"`
	BookerID  string        `json:"booker_id" bson:"booker_id"`
	OwnerID   string        `json:"owner_id" bson:"owner_id"`
	Status    BookingStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

type BookingCreate struct {
	ItemID string    `json:"item_id" validate:"required,mongodb"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID string `json:"id"`
}

type BookingView struct {
	ID     string        `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   ItemRef       `json:"item"`
	Booker UserRef       `json:"booker"`
}

// View renders b with the item name resolved by the caller.
func (b *Booking) View(itemName string) BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   ItemRef{ID: b.ItemID, Name: itemName},
		Booker: UserRef{ID: b.BookerID},
	}
}
