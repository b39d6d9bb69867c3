package sync

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SyncLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartTime     time.Time          `bson:"start_time" json:"start_time"`
	EndTime       time.Time          `bson:"end_time" json:"end_time"`
	Status        string             `bson:"status" json:"status"` // "success", "failed"
	EmployeeCount int                `bson:"employee_count" json:"employee_count"`
	ChainCount    int                `bson:"chain_count" json:"chain_count"`
	SkippedChains int                `bson:"skipped_chains" json:"skipped_chains"`
	Error         string             `bson:"error,omitempty" json:"error,omitempty"`
}

// directoryRow mirrors one employee record in the external HR database.
type directoryRow struct {
	EmployeeID string
	FullName   string
	Email      string
	Active     bool
}

// assignmentRow mirrors one manager assignment in the external HR database.
type assignmentRow struct {
	EmployeeID string
	ManagerID  string
	Rank       int
}
