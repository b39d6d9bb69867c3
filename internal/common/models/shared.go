package models

import "time"

type ContextKey string

const (
	TenantIDKey ContextKey = "tenant_id"
)

// Log is the document shape written by the async zap DB writer.
type Log struct {
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller,omitempty"`
	IpAddress    string    `bson:"ip_address,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	AppId        string    `bson:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// Change captures an old/new pair for audit-style diffs.
type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}
