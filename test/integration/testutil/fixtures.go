//go:build integration

package testutil

import (
	"fmt"
	"net/http"
	"shareit/pkg/model"
	"testing"
	"time"
)

func CreateUser(t *testing.T, c *Client, name string) *model.User {
	t.Helper()
	email := fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
	user := Decode[model.User](t, must(t)(c.api.CreateUser(name, email)), http.StatusCreated)
	return &user
}

func CreateItem(t *testing.T, c *Client, ownerID, name, description string) *model.Item {
	t.Helper()
	resp := must(t)(c.api.CreateItem(ownerID, map[string]any{
		"name":        name,
		"description": description,
		"available":   true,
	}))
	item := Decode[model.Item](t, resp, http.StatusCreated)
	return &item
}

func CreateBooking(t *testing.T, c *Client, bookerID, itemID string, start, end time.Time) *model.BookingView {
	t.Helper()
	resp := must(t)(c.api.CreateBooking(bookerID, map[string]any{
		"item_id": itemID,
		"start":   start.Format(time.RFC3339),
		"end":     end.Format(time.RFC3339),
	}))
	booking := Decode[model.BookingView](t, resp, http.StatusCreated)
	return &booking
}

func SetApproval(t *testing.T, c *Client, ownerID, bookingID string, approved bool) *Response {
	t.Helper()
	return must(t)(c.api.SetApproval(ownerID, bookingID, approved))
}

func ListBookings(t *testing.T, c *Client, bookerID, state string) []model.BookingView {
	t.Helper()
	return Decode[[]model.BookingView](t, must(t)(c.api.ListBookings(bookerID, state, 0, 10)), http.StatusOK)
}

func ListOwnerBookings(t *testing.T, c *Client, ownerID, state string) []model.BookingView {
	t.Helper()
	return Decode[[]model.BookingView](t, must(t)(c.api.ListOwnerBookings(ownerID, state, 0, 10)), http.StatusOK)
}
