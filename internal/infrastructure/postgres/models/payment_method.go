package models

import "time"

type PaymentMethodModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"type:uuid;index:idx_method_user"`
	Type      string
	Label     string
	MaskedRef string
	IsDefault bool
	CreatedAt time.Time
}

func (PaymentMethodModel) TableName() string { return "payment_methods" }
