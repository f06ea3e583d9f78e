package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	RollNumber   string    `gorm:"uniqueIndex" json:"roll_number"`
	PhoneNumber  string    `gorm:"uniqueIndex" json:"phone_number"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Role         string    `json:"role"`          // "student", "staff", "admin"
	PreviousRole string    `json:"previous_role"` // set the first time role leaves "student"
	WalletBalance  float64 `json:"wallet_balance"`
	Blocked        bool    `json:"blocked"`
	CancelledCount int     `json:"cancelled_count"`
	Verified       bool    `json:"verified"`
	RefreshToken   string  `json:"-"`

	Friends []*User `gorm:"many2many:user_friends" json:"friends,omitempty"`
	Timestamp
}

type CancelledOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	OrderNumber string    `json:"order_number"`
	CancelledBy string    `json:"cancelled_by"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
