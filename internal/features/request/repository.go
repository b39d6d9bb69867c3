package request

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/common/apperrors"
	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RequestRepository interface {
	Insert(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Request, error)
	List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]Request, error)
	// UpdateStateIfCurrent writes the new status/rank only when the stored
	// status and rank still match the expected pre-transition state. A
	// concurrent transition makes the guard miss and the caller gets
	// ErrStaleState.
	UpdateStateIfCurrent(ctx context.Context, id primitive.ObjectID, fromStatus Status, fromRank int, toStatus Status, toRank int, at time.Time) error
}

type RequestRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRequestRepository(mongodb *database.MongodbDB) RequestRepository {
	return &RequestRepositoryImpl{
		Collection: mongodb.DB.Collection("hr_requests"),
	}
}

func (r *RequestRepositoryImpl) Insert(ctx context.Context, req *Request) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, req)
	return err
}

func (r *RequestRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Request, error) {
	var req Request
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]Request, error) {
	query := bson.M{}
	for k, v := range filters {
		query[k] = v
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var requests []Request
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepositoryImpl) UpdateStateIfCurrent(ctx context.Context, id primitive.ObjectID, fromStatus Status, fromRank int, toStatus Status, toRank int, at time.Time) error {
	filter := bson.M{
		"_id":          id,
		"status":       fromStatus,
		"current_rank": fromRank,
	}
	update := bson.M{
		"$set": bson.M{
			"status":       toStatus,
			"current_rank": toRank,
			"updated_at":   at,
		},
	}

	res, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrStaleState
	}
	return nil
}
