package models

import "time"

type NotificationModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	// UserID stays a plain string: system notifications have no user.
	UserID       string `gorm:"index:idx_notification_user"`
	Type         string
	Title        string
	Message      string
	MetadataJSON string `gorm:"type:jsonb"`
	Read         bool
	CreatedAt    time.Time
}

func (NotificationModel) TableName() string { return "notifications" }
