package hierarchy

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HierarchyRepository interface {
	GetChain(ctx context.Context, employeeID string) ([]ManagerAssignment, error)
	// ReplaceChain deletes the employee's assignments and inserts the new set.
	// Callers run it inside a session so the swap is atomic.
	ReplaceChain(ctx context.Context, employeeID string, assignments []ManagerAssignment) error
}

type HierarchyRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewHierarchyRepository(mongodb *database.MongodbDB) HierarchyRepository {
	return &HierarchyRepositoryImpl{
		Collection: mongodb.DB.Collection("manager_assignments"),
	}
}

func (r *HierarchyRepositoryImpl) GetChain(ctx context.Context, employeeID string) ([]ManagerAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"employee_id": employeeID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []ManagerAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *HierarchyRepositoryImpl) ReplaceChain(ctx context.Context, employeeID string, assignments []ManagerAssignment) error {
	if _, err := r.Collection.DeleteMany(ctx, bson.M{"employee_id": employeeID}); err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(assignments))
	for _, a := range assignments {
		a.EmployeeID = employeeID
		a.IsActive = true
		a.CreatedAt = now
		a.UpdatedAt = now
		docs = append(docs, a)
	}
	_, err := r.Collection.InsertMany(ctx, docs)
	return err
}
