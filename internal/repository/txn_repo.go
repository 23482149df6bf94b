package repository

import (
	"context"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.Transaction, error)
	UpdateStatus(ctx context.Context, txnID uint, status models.TxnStatus) error
	GetDB() *gorm.DB
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, txnID uint, status models.TxnStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", txnID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
