package postgres

import (
	"log"

	"github.com/agromandi/payment-service/internal/config"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.OrderModel{},
		&models.PaymentModel{},
		&models.EscrowModel{},
		&models.RefundModel{},
		&models.LedgerRecordModel{},
		&models.PaymentMethodModel{},
		&models.NotificationModel{},
	)

	return db
}
