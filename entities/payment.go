package entities

import (
	"github.com/google/uuid"
)

type PaymentTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	OrderNumber string    `json:"order_number"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"` // midtrans transaction status
	SnapToken   string    `json:"snap_token,omitempty"`
	InvoiceURL  string    `json:"invoice_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
