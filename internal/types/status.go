package types

// Status is a type for the lifecycle status of a resource row in the database.
// This is used to track the lifecycle of a resource and to determine if it
// should be included in queries. Rows are archived, never hard-deleted.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)
