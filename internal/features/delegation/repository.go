package delegation

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DelegationRepository interface {
	Create(ctx context.Context, delegation Delegation) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id string) (*Delegation, error)
	ListByDelegator(ctx context.Context, delegatorID string) ([]Delegation, error)
	// ListCovering returns grants whose window contains asOf for the delegator.
	ListCovering(ctx context.Context, delegatorID string, asOf time.Time) ([]Delegation, error)
	// CloseWindow sets valid_to so the grant ends now; rows are never deleted.
	CloseWindow(ctx context.Context, id string, at time.Time, revokedBy string) error
	MarkExpired(ctx context.Context, before time.Time) (int64, error)
}

type DelegationRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDelegationRepository(mongodb *database.MongodbDB) DelegationRepository {
	return &DelegationRepositoryImpl{
		Collection: mongodb.DB.Collection("delegations"),
	}
}

func (r *DelegationRepositoryImpl) Create(ctx context.Context, delegation Delegation) (primitive.ObjectID, error) {
	if delegation.ID.IsZero() {
		delegation.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, delegation)
	return delegation.ID, err
}

func (r *DelegationRepositoryImpl) GetByID(ctx context.Context, id string) (*Delegation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var d Delegation
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DelegationRepositoryImpl) ListByDelegator(ctx context.Context, delegatorID string) ([]Delegation, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"delegator_id": delegatorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var delegations []Delegation
	if err = cursor.All(ctx, &delegations); err != nil {
		return nil, err
	}
	return delegations, nil
}

func (r *DelegationRepositoryImpl) ListCovering(ctx context.Context, delegatorID string, asOf time.Time) ([]Delegation, error) {
	filter := bson.M{
		"delegator_id": delegatorID,
		"valid_from":   bson.M{"$lte": asOf},
		"valid_to":     bson.M{"$gt": asOf},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var delegations []Delegation
	if err = cursor.All(ctx, &delegations); err != nil {
		return nil, err
	}
	return delegations, nil
}

func (r *DelegationRepositoryImpl) CloseWindow(ctx context.Context, id string, at time.Time, revokedBy string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"valid_to":   at,
			"revoked_at": at,
			"revoked_by": revokedBy,
		},
	}
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *DelegationRepositoryImpl) MarkExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.Collection.UpdateMany(ctx,
		bson.M{"valid_to": bson.M{"$lte": before}, "expired": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"expired": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
