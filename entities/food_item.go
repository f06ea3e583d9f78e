package entities

import (
	"github.com/google/uuid"
)

type FoodItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ItemName    string    `gorm:"uniqueIndex" json:"item_name"` // lower-cased, trimmed natural key
	Price       float64   `json:"price"`
	Category    string    `json:"category"` // "Breakfast", "Lunch", "Dinner"
	Stock       int       `json:"stock"`
	InStock     bool      `json:"in_stock"` // derived: stock > 0
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`

	Timestamp
}
