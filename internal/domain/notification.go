package domain

import "time"

type Notification struct {
	ID           string
	UserID       string // empty for system-wide notifications
	Type         string
	Title        string
	Message      string
	MetadataJSON string
	Read         bool
	CreatedAt    time.Time
}
