package hierarchy

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ManagerAssignment is one level of an employee's approval chain. Rank 0 is the
// direct manager; higher ranks are successive escalation levels. Ranks need not
// be contiguous but are consumed in ascending order.
type ManagerAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	ManagerID  string             `bson:"manager_id" json:"manager_id"`
	Rank       int                `bson:"rank" json:"rank"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// ChainInput is the wholesale replacement payload for an employee's chain.
type ChainInput struct {
	Assignments []AssignmentInput `json:"assignments"`
}

type AssignmentInput struct {
	ManagerID string `json:"manager_id"`
	Rank      int    `json:"rank"`
}
