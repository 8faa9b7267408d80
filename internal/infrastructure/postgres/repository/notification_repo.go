package repository

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) CreateNotification(notification *domain.Notification) error {
	return r.DB.Create(&models.NotificationModel{
		ID:           notification.ID,
		UserID:       notification.UserID,
		Type:         notification.Type,
		Title:        notification.Title,
		Message:      notification.Message,
		MetadataJSON: notification.MetadataJSON,
		Read:         notification.Read,
		CreatedAt:    notification.CreatedAt,
	}).Error
}
