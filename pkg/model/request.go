package model

import "time"

type Request struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Description string    `json:"description" bson:"description"`
	RequesterID string    `json:"requester_id" bson:"requester_id"`
	CreatedAt   time.Time `json:"created" bson:"created_at"`
}

type RequestCreate struct {
	Description string `json:"description" validate:"required,max=2000"`
}

// ItemSummary is an item listed in answer to a request.
type ItemSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     string `json:"owner_id"`
	RequestID   string `json:"request_id"`
}

type RequestView struct {
	Request
	Items []ItemSummary `json:"items"`
}

func (i *Item) Summary() ItemSummary {
	return ItemSummary{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
}
