package repository

import (
	"shareit/internal/bookings/state"
	"shareit/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryFilter translates a listing query into a Mongo filter. It must select
// exactly the bookings for which q.Matches is true.
func QueryFilter(q state.Query) bson.M {
	field := "booker_id"
	if q.Role == state.Owner {
		field = "owner_id"
	}
	filter := bson.M{field: q.ActorID}

	switch q.State {
	case state.Current:
		filter["start"] = bson.M{"$lte": q.Now}
		filter["end"] = bson.M{"$gte": q.Now}
	case state.Past:
		filter["end"] = bson.M{"$lt": q.Now}
	case state.Future:
		filter["start"] = bson.M{"$gt": q.Now}
	case state.Waiting:
		filter["status"] = model.StatusWaiting
	case state.Rejected:
		filter["status"] = model.StatusRejected
	}
	return filter
}

// StartSort orders by start with _id as the tie-break in the same direction.
func StartSort(dir state.Direction) bson.D {
	return bson.D{
		{Key: "start", Value: int(dir)},
		{Key: "_id", Value: int(dir)},
	}
}

// ParticipantFilter matches a booking by id when userID is its booker or owner.
func ParticipantFilter(id primitive.ObjectID, userID string) bson.M {
	return bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"booker_id": userID},
			bson.M{"owner_id": userID},
		},
	}
}

// ItemWindowFilter selects bookings on an item starting strictly before ($lt)
// or after ($gt) now.
func ItemWindowFilter(itemID string, op string, now time.Time, approvedOnly bool) bson.M {
	filter := bson.M{
		"item_id": itemID,
		"start":   bson.M{op: now},
	}
	if approvedOnly {
		filter["status"] = model.StatusApproved
	}
	return filter
}

// CompletedByFilter matches finished bookings of bookerID on itemID in any status.
func CompletedByFilter(bookerID string, itemID string, now time.Time) bson.M {
	return bson.M{
		"booker_id": bookerID,
		"item_id":   itemID,
		"end":       bson.M{"$lt": now},
	}
}
