package permission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operations governed by the permission collaborator. Every transition route
// is authorized before any state is touched.
const (
	OpChainsManage      = "chains.manage"
	OpChainsRead        = "chains.read"
	OpDelegationsManage = "delegations.manage"
	OpDelegationsRead   = "delegations.read"
	OpRequestsSubmit    = "requests.submit"
	OpRequestsDecide    = "requests.decide"
	OpRequestsCancel    = "requests.cancel" // administrator capability
	OpAuditRead         = "audit.read"
)

// RolePermission maps one role to the operations it may call.
type RolePermission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role       string             `bson:"role" json:"role"`
	Operations []string           `bson:"operations" json:"operations"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
