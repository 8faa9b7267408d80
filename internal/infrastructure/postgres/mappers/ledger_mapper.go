package mappers

import (
	"github.com/agromandi/payment-service/internal/domain"
	"github.com/agromandi/payment-service/internal/infrastructure/postgres/models"
)

func ToDomainLedgerRecord(model *models.LedgerRecordModel) *domain.LedgerRecord {
	return &domain.LedgerRecord{
		ID:          model.ID,
		PaymentID:   model.PaymentID,
		Hash:        model.Hash,
		BlockNumber: model.BlockNumber,
		FromAddress: model.FromAddress,
		ToAddress:   model.ToAddress,
		Amount:      model.Amount,
		Currency:    model.Currency,
		Type:        model.Type,
		Status:      model.Status,
		Nonce:       model.Nonce,
		HashedAt:    model.HashedAt,
		CreatedAt:   model.CreatedAt,
	}
}

func ToGORMLedgerRecord(record *domain.LedgerRecord) *models.LedgerRecordModel {
	return &models.LedgerRecordModel{
		ID:          record.ID,
		PaymentID:   record.PaymentID,
		Hash:        record.Hash,
		BlockNumber: record.BlockNumber,
		FromAddress: record.FromAddress,
		ToAddress:   record.ToAddress,
		Amount:      record.Amount,
		Currency:    record.Currency,
		Type:        record.Type,
		Status:      record.Status,
		Nonce:       record.Nonce,
		HashedAt:    record.HashedAt,
		CreatedAt:   record.CreatedAt,
	}
}
