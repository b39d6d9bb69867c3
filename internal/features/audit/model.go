package audit

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Decision string

const (
	DecisionSubmitted    Decision = "submitted"
	DecisionApproved     Decision = "approved"
	DecisionAutoApproved Decision = "auto_approved"
	DecisionRejected     Decision = "rejected"
	DecisionCancelled    Decision = "cancelled"
)

// ApprovalEvent is the append-only audit ledger: one document per transition,
// never updated or deleted. It is the only source of "who approved what, and
// on whose behalf."
type ApprovalEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID primitive.ObjectID `bson:"request_id" json:"request_id"`
	Rank      int                `bson:"rank" json:"rank"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`

	// ActingAsDelegateOf names the delegator being represented when the actor
	// acted via delegation; empty when the assigned manager acted directly.
	ActingAsDelegateOf string `bson:"acting_as_delegate_of,omitempty" json:"acting_as_delegate_of,omitempty"`

	Decision   Decision  `bson:"decision" json:"decision"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
}
