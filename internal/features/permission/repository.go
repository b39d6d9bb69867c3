package permission

import (
	"context"
	"time"

	"github.com/yahya12213/SiteManagement-sub007/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PermissionRepository interface {
	FindByRoles(ctx context.Context, roles []string) ([]RolePermission, error)
	List(ctx context.Context) ([]RolePermission, error)
	Upsert(ctx context.Context, perm RolePermission) error
}

type PermissionRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewPermissionRepository(mongodb *database.MongodbDB) PermissionRepository {
	return &PermissionRepositoryImpl{
		Collection: mongodb.DB.Collection("role_permissions"),
	}
}

func (r *PermissionRepositoryImpl) FindByRoles(ctx context.Context, roles []string) ([]RolePermission, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"role": bson.M{"$in": roles}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var perms []RolePermission
	if err = cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]RolePermission, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var perms []RolePermission
	if err = cursor.All(ctx, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepositoryImpl) Upsert(ctx context.Context, perm RolePermission) error {
	update := bson.M{
		"$set": bson.M{
			"operations": perm.Operations,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{"role": perm.Role},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"role": perm.Role}, update, options.Update().SetUpsert(true))
	return err
}
