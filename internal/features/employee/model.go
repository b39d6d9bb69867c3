package employee

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a local replica of the corporate directory entry. Identity is
// owned by the external directory; we only keep references plus the
// denormalized direct-manager pointer maintained by the hierarchy store.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Active     bool               `bson:"active" json:"active"`

	// DirectManagerID mirrors the rank-0 assignment of the approval chain.
	// Read-optimization only, never a writable source of truth.
	DirectManagerID *string `bson:"direct_manager_id,omitempty" json:"direct_manager_id,omitempty"`

	SyncedAt  time.Time `bson:"synced_at" json:"synced_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
