package domain

import "time"

// AccessDeniedEvent is the audit record written for every authorization
// denial.
type AccessDeniedEvent struct {
	PrincipalID int64     `bson:"principal_id"`
	Username    string    `bson:"username"`
	Resource    string    `bson:"resource"`
	Action      string    `bson:"action"`
	ResourceID  int64     `bson:"resource_id"`
	OwnerID     int64     `bson:"owner_id"`
	Reason      string    `bson:"reason,omitempty"`
	Method      string    `bson:"method"`
	Path        string    `bson:"path"`
	RequestID   string    `bson:"request_id,omitempty"`
	OccurredAt  time.Time `bson:"occurred_at"`
}
