package domain

import (
	"errors"
)

var (
	MessageSuccessCheckout = "payment transaction created successfully"
	MessageSuccessWebhook  = "payment notification processed successfully"

	MessageFailedCheckout = "failed to create payment transaction"
	MessageFailedWebhook  = "failed to process payment notification"

	ErrPaymentFailed       = errors.New("payment processing failed")
	ErrTransactionNotFound = errors.New("payment transaction not found")
)

type (
	CheckoutRequest struct {
		OrderNumber string `json:"order_number" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
	}

	CheckoutResponse struct {
		TransactionID string `json:"transaction_id"`
		SnapToken     string `json:"snap_token"`
		InvoiceURL    string `json:"invoice_url"`
	}

	MidtransNotification struct {
		TransactionStatus string `json:"transaction_status"`
		OrderID           string `json:"order_id"`
		FraudStatus       string `json:"fraud_status"`
	}
)
