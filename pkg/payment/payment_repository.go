package payment

import (
	"CanteenHub-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	PaymentRepository interface {
		CreateTransaction(ctx context.Context, tx *entities.PaymentTransaction) error
		GetTransactionByOrderNumber(ctx context.Context, orderNumber string) (*entities.PaymentTransaction, error)
		UpdateTransactionStatus(ctx context.Context, orderNumber, status string) error
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateTransaction(ctx context.Context, tx *entities.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *paymentRepository) GetTransactionByOrderNumber(ctx context.Context, orderNumber string) (*entities.PaymentTransaction, error) {
	var tx entities.PaymentTransaction
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Order("created_at desc").
		First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *paymentRepository) UpdateTransactionStatus(ctx context.Context, orderNumber, status string) error {
	return r.db.WithContext(ctx).Model(&entities.PaymentTransaction{}).
		Where("order_number = ?", orderNumber).
		Update("status", status).Error
}
