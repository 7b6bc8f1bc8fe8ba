package repository

import (
	"context"
	"errors"
	"fmt"
	requestserrors "shareit/internal/requests/errors"
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
	CollectionName = "Requests"
)

// newestFirst orders requests by creation time, newest first.
var newestFirst = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id string) (*model.Request, error)
	FindByRequester(ctx context.Context, requesterID string) ([]*model.Request, error)
	// FindOthers pages the requests made by anyone except requesterID.
	FindOthers(ctx context.Context, requesterID string, skip, limit int64) ([]*model.Request, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type mongoRequestRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRequestRepository(cfg *config.Config) RequestRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRequestRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRequestRepository) Create(ctx context.Context, request *model.Request) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	request.CreatedAt = request.CreatedAt.Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRequestRepository) FindByID(ctx context.Context, id string) (*model.Request, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := mongotx.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", requestserrors.ErrInvalidID, id)
	}

	var request model.Request
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, requestserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}
	return &request, nil
}

func (r *mongoRequestRepository) FindByRequester(ctx context.Context, requesterID string) ([]*model.Request, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(newestFirst)
	return r.find(ctx, bson.M{"requester_id": requesterID}, opts)
}

func (r *mongoRequestRepository) FindOthers(ctx context.Context, requesterID string, skip, limit int64) ([]*model.Request, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.M{"requester_id": bson.M{"$ne": requesterID}}, opts)
}

func (r *mongoRequestRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Request, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []*model.Request{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return requests, nil
}

func (r *mongoRequestRepository) Exists(ctx context.Context, id string) (bool, error) {
	objectID, err := mongotx.ParseID(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count requests: %w", err)
	}
	return count > 0, nil
}
