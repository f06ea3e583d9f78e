package wallet

import (
	"CanteenHub-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	// WalletRepository mutates balances with single conditional UPDATEs,
	// never load-then-save, so concurrent operations cannot lose updates.
	WalletRepository interface {
		GetUser(ctx context.Context, userID string) (*entities.User, error)
		Credit(ctx context.Context, userID string, amount float64) error
		// Debit applies the amount only when the balance covers it and
		// reports whether a row was updated.
		Debit(ctx context.Context, userID string, amount float64) (bool, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *walletRepository) Credit(ctx context.Context, userID string, amount float64) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error
}

func (r *walletRepository) Debit(ctx context.Context, userID string, amount float64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
