package employee

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository interface {
	Upsert(ctx context.Context, emp Employee) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	SetDirectManager(ctx context.Context, employeeID string, managerID *string) error
}

type EmployeeRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewEmployeeRepository(mongodb *database.MongodbDB) EmployeeRepository {
	return &EmployeeRepositoryImpl{
		Collection: mongodb.DB.Collection("employees"),
	}
}

func (r *EmployeeRepositoryImpl) Upsert(ctx context.Context, emp Employee) error {
	filter := bson.M{"employee_id": emp.EmployeeID}
	update := bson.M{
		"$set": bson.M{
			"full_name":  emp.FullName,
			"email":      emp.Email,
			"active":     emp.Active,
			"synced_at":  emp.SyncedAt,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{"employee_id": emp.EmployeeID},
	}
	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *EmployeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	err := r.Collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&emp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]Employee, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var employees []Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// SetDirectManager keeps the rank-0 projection in sync. A nil managerID clears
// the pointer when no rank-0 assignment remains.
func (r *EmployeeRepositoryImpl) SetDirectManager(ctx context.Context, employeeID string, managerID *string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	if managerID == nil {
		update["$unset"] = bson.M{"direct_manager_id": ""}
	} else {
		update["$set"].(bson.M)["direct_manager_id"] = *managerID
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"employee_id": employeeID}, update)
	return err
}
