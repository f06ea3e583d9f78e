package entities

import (
	"github.com/google/uuid"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderNumber string    `gorm:"uniqueIndex" json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`
	OrderedBy   string    `json:"ordered_by"` // username, denormalized
	Amount      float64   `json:"amount"`     // frozen price snapshot, never recomputed
	TotalPrice  float64   `json:"total_price"`
	Status      string    `json:"status"`         // "pending", "preparing", "cancelled", "completed"
	PaymentStatus string  `json:"payment_status"` // "pending", "completed", "failed"
	Pre           bool    `json:"pre"`
	QRCode        string  `json:"qr_code,omitempty"`
	ReceiptImageURL          string `json:"receipt_image_url,omitempty"`
	ReceiptImageURLNoBarcode string `json:"receipt_image_url_no_barcode,omitempty"`
	ScanCount                int    `json:"scan_count"`

	User  *User        `gorm:"foreignKey:UserID"`
	Items []*OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Timestamp
}

// OrderItem is one purchased unit; quantities are expressed by repetition.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	FoodItemID uuid.UUID `json:"food_item_id"`
	ItemName   string    `json:"item_name"`
	Price      float64   `json:"price"` // unit price at order time

	Order    *Order    `gorm:"foreignKey:OrderID"`
	FoodItem *FoodItem `gorm:"foreignKey:FoodItemID"`
	Timestamp
}
