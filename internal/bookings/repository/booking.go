package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "shareit/internal/bookings/errors"
	"shareit/internal/bookings/state"
	"shareit/pkg/config"
	mongotx "shareit/pkg/db/mongo"
	"shareit/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// FindByIDForParticipant finds a booking only if userID is its booker or
	// the owner of its item.
	FindByIDForParticipant(ctx context.Context, id string, userID string) (*model.Booking, error)
	// UpdateStatus moves a booking from one status to another. It fails with
	// ErrStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error)
	List(ctx context.Context, q state.Query) ([]*model.Booking, error)
	// FindLatestBefore and FindEarliestAfter return nil without error when no
	// booking qualifies.
	FindLatestBefore(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error)
	FindEarliestAfter(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error)
	FindByItemIDs(ctx context.Context, itemIDs []string) ([]*model.Booking, error)
	ExistsCompletedBy(ctx context.Context, bookerID string, itemID string, now time.Time) (bool, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	objectID, err := mongotx.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoBookingRepository) FindByIDForParticipant(ctx context.Context, id string, userID string) (*model.Booking, error) {
	objectID, err := mongotx.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, ParticipantFilter(objectID, userID))
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := mongotx.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrStatusChanged
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) List(ctx context.Context, q state.Query) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(StartSort(q.State.Order())).
		SetSkip(q.Page.Skip()).
		SetLimit(q.Page.Limit())

	return r.find(ctx, QueryFilter(q), opts)
}

func (r *mongoBookingRepository) FindLatestBefore(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error) {
	filter := ItemWindowFilter(itemID, "$lt", now, approvedOnly)
	opts := options.FindOne().SetSort(StartSort(state.Descending))
	return r.findOptional(ctx, filter, opts)
}

func (r *mongoBookingRepository) FindEarliestAfter(ctx context.Context, itemID string, now time.Time, approvedOnly bool) (*model.Booking, error) {
	filter := ItemWindowFilter(itemID, "$gt", now, approvedOnly)
	opts := options.FindOne().SetSort(StartSort(state.Ascending))
	return r.findOptional(ctx, filter, opts)
}

func (r *mongoBookingRepository) findOptional(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*model.Booking, error) {
	booking, err := r.findOne(ctx, filter, opts)
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return nil, nil
	}
	return booking, err
}

func (r *mongoBookingRepository) FindByItemIDs(ctx context.Context, itemIDs []string) ([]*model.Booking, error) {
	if len(itemIDs) == 0 {
		return []*model.Booking{}, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"item_id": bson.M{"$in": itemIDs}}
	return r.find(ctx, filter, options.Find().SetSort(StartSort(state.Ascending)))
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) ExistsCompletedBy(ctx context.Context, bookerID string, itemID string, now time.Time) (bool, error) {
	return r.exists(ctx, CompletedByFilter(bookerID, itemID, now))
}

func (r *mongoBookingRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	return r.exists(ctx, bson.M{"booker_id": userID})
}

func (r *mongoBookingRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count > 0, nil
}
