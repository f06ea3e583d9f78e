package wallet

import (
	"CanteenHub-Backend/domain"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	WalletService interface {
		AddMoney(ctx context.Context, req domain.AddMoneyRequest, userID string) (domain.WalletResponse, error)
		DeductMoney(ctx context.Context, req domain.DeductMoneyRequest, userID string) (domain.WalletResponse, error)
		GetWallet(ctx context.Context, userID string) (domain.WalletResponse, error)
	}

	walletService struct {
		walletRepository WalletRepository
	}
)

func NewWalletService(walletRepository WalletRepository) WalletService {
	return &walletService{walletRepository: walletRepository}
}

func (s *walletService) AddMoney(ctx context.Context, req domain.AddMoneyRequest, userID string) (domain.WalletResponse, error) {
	if req.Amount <= 0 {
		return domain.WalletResponse{}, domain.ErrInvalidAmount
	}

	if err := s.walletRepository.Credit(ctx, userID, req.Amount); err != nil {
		return domain.WalletResponse{}, err
	}

	return s.GetWallet(ctx, userID)
}

func (s *walletService) DeductMoney(ctx context.Context, req domain.DeductMoneyRequest, userID string) (domain.WalletResponse, error) {
	if req.Amount <= 0 {
		return domain.WalletResponse{}, domain.ErrInvalidAmount
	}

	ok, err := s.walletRepository.Debit(ctx, userID, req.Amount)
	if err != nil {
		return domain.WalletResponse{}, err
	}
	if !ok {
		return domain.WalletResponse{}, domain.ErrInsufficientBalance
	}

	return s.GetWallet(ctx, userID)
}

func (s *walletService) GetWallet(ctx context.Context, userID string) (domain.WalletResponse, error) {
	user, err := s.walletRepository.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WalletResponse{}, domain.ErrUserNotFound
		}
		return domain.WalletResponse{}, err
	}

	return domain.WalletResponse{
		Username:      user.Username,
		WalletBalance: user.WalletBalance,
	}, nil
}
