package audit

import (
	"context"

	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository interface {
	// Append inserts the event. The ledger only ever grows; there is no update
	// or delete on this collection.
	Append(ctx context.Context, event ApprovalEvent) error
	ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]ApprovalEvent, error)
	List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]ApprovalEvent, error)
}

type EventRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEventRepository(mongodb *database.MongodbDB) EventRepository {
	return &EventRepositoryImpl{
		Collection: mongodb.DB.Collection("approval_events"),
	}
}

func (r *EventRepositoryImpl) Append(ctx context.Context, event ApprovalEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, event)
	return err
}

func (r *EventRepositoryImpl) ListByRequest(ctx context.Context, requestID primitive.ObjectID) ([]ApprovalEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var events []ApprovalEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filters map[string]interface{}, limit, offset int64) ([]ApprovalEvent, error) {
	query := bson.M{}
	for k, v := range filters {
		query[k] = v
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var events []ApprovalEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
