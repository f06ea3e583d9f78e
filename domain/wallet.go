package domain

import (
	"errors"
)

var (
	MessageSuccessAddMoney    = "money added to wallet successfully"
	MessageSuccessDeductMoney = "money deducted from wallet successfully"

	MessageFailedAddMoney    = "failed to add money to wallet"
	MessageFailedDeductMoney = "failed to deduct money from wallet"

	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
)

type (
	AddMoneyRequest struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}

	DeductMoneyRequest struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}

	WalletResponse struct {
		Username      string  `json:"username"`
		WalletBalance float64 `json:"wallet_balance"`
	}
)
