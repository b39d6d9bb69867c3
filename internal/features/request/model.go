package request

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestType string

const (
	TypeLeave      RequestType = "leave"
	TypeOvertime   RequestType = "overtime"
	TypeCorrection RequestType = "correction"
)

func ValidType(t RequestType) bool {
	switch t {
	case TypeLeave, TypeOvertime, TypeCorrection:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// StageStatus is the intermediate status after n approvals have been granted
// on a chain that still has ranks outstanding: approved_n1, approved_n2, ...
// The ordinal counts approvals, so it stays meaningful on non-contiguous
// chains; current_rank carries the actual outstanding rank value.
func StageStatus(n int) Status {
	return Status(fmt.Sprintf("approved_n%d", n))
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Request is owned exclusively by the state machine; it is mutated only
// through transition operations, never by direct field writes.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID  string             `bson:"employee_id" json:"employee_id"`
	RequestType RequestType        `bson:"request_type" json:"request_type"`
	Status      Status             `bson:"status" json:"status"`

	// CurrentRank is the rank whose decision is outstanding. On a terminal
	// request it keeps the last rank that acted.
	CurrentRank int `bson:"current_rank" json:"current_rank"`

	// Payload carries the leave/overtime/correction specifics. Opaque to the
	// state machine, which never inspects it.
	Payload map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type SubmitInput struct {
	EmployeeID  string                 `json:"employee_id"`
	RequestType RequestType            `json:"request_type"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

type DecisionInput struct {
	Comment string `json:"comment,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
