package model

import "time"

type Item struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Available   bool      `json:"available" bson:"available"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	RequestID   string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type ItemCreate struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=2000"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   string `json:"request_id,omitempty" validate:"omitempty,mongodb"`
}

// ItemUpdate is a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Available   *bool   `json:"available,omitempty"`
}

func (u *ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Available == nil
}

// BookingRef is the compact booking shown on an item view.
type BookingRef struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

// ItemView is an item enriched for a particular viewer. LastBooking and
// NextBooking are only ever populated for the owner.
type ItemView struct {
	Item
	LastBooking *BookingRef   `json:"last_booking"`
	NextBooking *BookingRef   `json:"next_booking"`
	Comments    []CommentView `json:"comments"`
}
