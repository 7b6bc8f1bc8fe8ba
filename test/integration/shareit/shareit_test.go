//go:build integration

package shareit

import (
	"net/http"
	"shareit/pkg/model"
	"shareit/test/integration/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const bookingsCollection = "Bookings"

func setup(t *testing.T) (*testutil.MongoHelper, *testutil.Client) {
	t.Helper()
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	t.Cleanup(func() { env.Cleanup(t, mongo) })
	return mongo, client
}

// ──────────────────────────────────────────────────────────────
// Booking lifecycle
// ──────────────────────────────────────────────────────────────

func TestBookingLifecycle(t *testing.T) {
	mongo, client := setup(t)

	owner := testutil.CreateUser(t, client, "owner")
	booker := testutil.CreateUser(t, client, "booker")
	item := testutil.CreateItem(t, client, owner.ID, "Cordless drill", "18V with two batteries")

	start := time.Now().Add(time.Hour).Truncate(time.Second)
	booking := testutil.CreateBooking(t, client, booker.ID, item.ID, start, start.Add(time.Hour))
	assert.Equal(t, model.StatusWaiting, booking.Status)
	assert.Equal(t, item.ID, booking.Item.ID)
	assert.Equal(t, "Cordless drill", booking.Item.Name)

	t.Run("booker cannot approve", func(t *testing.T) {
		resp := testutil.SetApproval(t, client, booker.ID, booking.ID, true)
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	approved := testutil.Decode[model.BookingView](t, testutil.SetApproval(t, client, owner.ID, booking.ID, true), http.StatusOK)
	assert.Equal(t, model.StatusApproved, approved.Status)

	t.Run("second decision with same value", func(t *testing.T) {
		resp := testutil.SetApproval(t, client, owner.ID, booking.ID, true)
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
		assert.Equal(t, "ALREADY_DECIDED", testutil.ErrorCode(t, resp))
	})

	t.Run("future listings", func(t *testing.T) {
		mine := testutil.ListBookings(t, client, booker.ID, "FUTURE")
		require.Len(t, mine, 1)
		assert.Equal(t, booking.ID, mine[0].ID)

		owned := testutil.ListOwnerBookings(t, client, owner.ID, "FUTURE")
		require.Len(t, owned, 1)

		assert.Empty(t, testutil.ListBookings(t, client, booker.ID, "PAST"))
	})

	t.Run("participants read the booking", func(t *testing.T) {
		for _, actor := range []string{owner.ID, booker.ID} {
			view := testutil.Decode[model.BookingView](t, client.GetBooking(t, actor, booking.ID), http.StatusOK)
			assert.Equal(t, booker.ID, view.Booker.ID)
		}

		stranger := testutil.CreateUser(t, client, "stranger")
		resp := client.GetBooking(t, stranger.ID, booking.ID)
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("comment requires a completed booking", func(t *testing.T) {
		resp := client.As(booker.ID).POST(t, "/items/"+item.ID+"/comment", map[string]any{"text": "Great drill"})
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
		assert.Equal(t, "COMMENT_NOT_ALLOWED", testutil.ErrorCode(t, resp))
	})

	oid, err := primitive.ObjectIDFromHex(booking.ID)
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	mongo.SetBookingWindow(t, bookingsCollection, oid, past, past.Add(time.Hour))

	t.Run("comment after the booking ended", func(t *testing.T) {
		resp := client.As(booker.ID).POST(t, "/items/"+item.ID+"/comment", map[string]any{"text": "Great drill"})
		comment := testutil.Decode[model.CommentView](t, resp, http.StatusCreated)
		assert.Equal(t, "booker", comment.AuthorName)
	})

	t.Run("owner sees last booking and comments", func(t *testing.T) {
		view := testutil.Decode[model.ItemView](t, client.GetItem(t, owner.ID, item.ID), http.StatusOK)
		require.NotNil(t, view.LastBooking)
		assert.Equal(t, booking.ID, view.LastBooking.ID)
		assert.Equal(t, booker.ID, view.LastBooking.BookerID)
		assert.Nil(t, view.NextBooking)
		require.Len(t, view.Comments, 1)
	})

	t.Run("non-owner sees no bookings", func(t *testing.T) {
		view := testutil.Decode[model.ItemView](t, client.GetItem(t, booker.ID, item.ID), http.StatusOK)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
		assert.Len(t, view.Comments, 1)
	})

	t.Run("owner with history cannot be deleted", func(t *testing.T) {
		resp := client.DeleteUser(t, owner.ID)
		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})
}

// ──────────────────────────────────────────────────────────────
// Booking rejections
// ──────────────────────────────────────────────────────────────

func TestBookingRejections(t *testing.T) {
	_, client := setup(t)

	owner := testutil.CreateUser(t, client, "owner")
	booker := testutil.CreateUser(t, client, "booker")
	item := testutil.CreateItem(t, client, owner.ID, "Ladder", "Three meters")
	start := time.Now().Add(time.Hour)

	tests := []struct {
		name     string
		actor    string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{
			name:     "own item",
			actor:    owner.ID,
			body:     map[string]any{"item_id": item.ID, "start": start, "end": start.Add(time.Hour)},
			wantCode: http.StatusForbidden,
			wantErr:  "OWN_ITEM_BOOKING",
		},
		{
			name:     "end before start",
			actor:    booker.ID,
			body:     map[string]any{"item_id": item.ID, "start": start.Add(time.Hour), "end": start},
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_INTERVAL",
		},
		{
			name:     "unknown item",
			actor:    booker.ID,
			body:     map[string]any{"item_id": primitive.NewObjectID().Hex(), "start": start, "end": start.Add(time.Hour)},
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := client.As(tt.actor).POST(t, "/bookings", tt.body)
			testutil.AssertStatusCode(t, resp, tt.wantCode)
			assert.Equal(t, tt.wantErr, testutil.ErrorCode(t, resp))
		})
	}

	t.Run("unknown state", func(t *testing.T) {
		resp := client.As(booker.ID).GET(t, "/bookings?state=UNSUPPORTED_STATUS")
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
		assert.Equal(t, "UNKNOWN_STATE", testutil.ErrorCode(t, resp))
	})
}

// ──────────────────────────────────────────────────────────────
// Search and requests
// ──────────────────────────────────────────────────────────────

func TestSearchAndRequests(t *testing.T) {
	_, client := setup(t)

	owner := testutil.CreateUser(t, client, "owner")
	asker := testutil.CreateUser(t, client, "asker")
	testutil.CreateItem(t, client, owner.ID, "Hammer DRILL", "heavy duty")

	t.Run("search ignores case", func(t *testing.T) {
		found := testutil.Decode[[]model.Item](t, client.As(asker.ID).GET(t, "/items/search?text=drill"), http.StatusOK)
		require.Len(t, found, 1)
		assert.Equal(t, "Hammer DRILL", found[0].Name)
	})

	resp := client.As(asker.ID).POST(t, "/requests", map[string]any{"description": "Need a tent"})
	request := testutil.Decode[model.RequestView](t, resp, http.StatusCreated)

	resp = client.As(owner.ID).POST(t, "/items", map[string]any{
		"name":        "Tent",
		"description": "Four person",
		"available":   true,
		"request_id":  request.ID,
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	t.Run("own requests carry answers", func(t *testing.T) {
		mine := testutil.Decode[[]model.RequestView](t, client.As(asker.ID).GET(t, "/requests"), http.StatusOK)
		require.Len(t, mine, 1)
		require.Len(t, mine[0].Items, 1)
		assert.Equal(t, "Tent", mine[0].Items[0].Name)
	})

	t.Run("others see the request", func(t *testing.T) {
		others := testutil.Decode[[]model.RequestView](t, client.As(owner.ID).GET(t, "/requests/all?from=0&size=10"), http.StatusOK)
		require.Len(t, others, 1)
		assert.Equal(t, request.ID, others[0].ID)
	})
}
