package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem      = "food item added successfully"
	MessageSuccessUpdateFoodItem   = "food item updated successfully"
	MessageSuccessRemoveFoodItem   = "food item removed successfully"
	MessageSuccessGetFoodItems     = "food items retrieved successfully"
	MessageSuccessGetCategoryItems = "category items retrieved successfully"

	MessageFailedAddFoodItem      = "failed to add food item"
	MessageFailedUpdateFoodItem   = "failed to update food item"
	MessageFailedRemoveFoodItem   = "failed to remove food item"
	MessageFailedGetFoodItems     = "failed to retrieve food items"
	MessageFailedGetCategoryItems = "failed to retrieve category items"

	ErrFoodItemNotFound      = errors.New("food item not found")
	ErrFoodItemAlreadyExists = errors.New("food item already exists")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidPrice          = errors.New("price must not be negative")
	ErrInvalidStock          = errors.New("stock must not be negative")
)

const (
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
)

type (
	AddFoodItemRequest struct {
		ItemName    string                `json:"item_name" form:"item_name" validate:"required,min=2,max=100"`
		Price       float64               `json:"price" form:"price" validate:"required,min=0"`
		Category    string                `json:"category" form:"category" validate:"required,oneof=Breakfast Lunch Dinner"`
		Stock       int                   `json:"stock" form:"stock" validate:"min=0"`
		Description string                `json:"description" form:"description"`
		Image       *multipart.FileHeader `json:"-" form:"image"`
	}

	UpdateFoodItemRequest struct {
		ItemName    string  `json:"item_name" validate:"required"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		Category    string  `json:"category" validate:"omitempty,oneof=Breakfast Lunch Dinner"`
		Stock       *int    `json:"stock" validate:"omitempty,min=0"`
		Description *string `json:"description"`
	}

	RemoveFoodItemRequest struct {
		ItemName string `json:"item_name" validate:"required"`
	}

	GetCategoryItemsRequest struct {
		Category string `json:"category" validate:"required,oneof=Breakfast Lunch Dinner"`
	}

	FoodItemResponse struct {
		ID          string    `json:"id"`
		ItemName    string    `json:"item_name"`
		Price       float64   `json:"price"`
		Category    string    `json:"category"`
		Stock       int       `json:"stock"`
		InStock     bool      `json:"in_stock"`
		ImageURL    string    `json:"image_url,omitempty"`
		Description string    `json:"description,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
