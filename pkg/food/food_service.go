package food

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/internal/utils/storage"
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateItem(ctx context.Context, req domain.UpdateFoodItemRequest) error
		RemoveItem(ctx context.Context, req domain.RemoveFoodItemRequest) error
		GetCategoryItems(ctx context.Context, req domain.GetCategoryItemsRequest) ([]domain.FoodItemResponse, error)
		GetAllFoods(ctx context.Context, page, limit int) ([]domain.FoodItemResponse, int64, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
	}
}

// NormalizeItemName lower-cases and trims an item name; it is the catalog's
// natural key.
func NormalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *foodService) AddItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	if req.Price < 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidStock
	}

	itemName := NormalizeItemName(req.ItemName)

	if _, err := s.foodRepository.GetFoodItemByName(ctx, itemName); err == nil {
		return domain.FoodItemResponse{}, domain.ErrFoodItemAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FoodItemResponse{}, err
	}

	item := &entities.FoodItem{
		ID:          uuid.New(),
		ItemName:    itemName,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		InStock:     req.Stock > 0,
		Description: req.Description,
	}

	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(item.ID.String(), req.Image, "food-items", storage.AllowImage...)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		item.ImageURL = s.s3.ObjectURL(objectKey)
	}

	if err := s.foodRepository.AddFoodItem(ctx, item); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(item), nil
}

func (s *foodService) UpdateItem(ctx context.Context, req domain.UpdateFoodItemRequest) error {
	item, err := s.foodRepository.GetFoodItemByName(ctx, NormalizeItemName(req.ItemName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return domain.ErrInvalidStock
		}
		item.Stock = *req.Stock
		item.InStock = *req.Stock > 0
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	return s.foodRepository.UpdateFoodItem(ctx, item)
}

func (s *foodService) RemoveItem(ctx context.Context, req domain.RemoveFoodItemRequest) error {
	itemName := NormalizeItemName(req.ItemName)

	item, err := s.foodRepository.GetFoodItemByName(ctx, itemName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if err := s.foodRepository.DeleteFoodItem(ctx, itemName); err != nil {
		return err
	}

	// Hosted image cleanup is best-effort.
	if key, ok := s.s3.HostsURL(item.ImageURL); ok {
		if err := s.s3.DeleteFile(key); err != nil {
			log.Printf("failed to delete image for removed food item %s: %v", itemName, err)
		}
	}

	return nil
}

func (s *foodService) GetCategoryItems(ctx context.Context, req domain.GetCategoryItemsRequest) ([]domain.FoodItemResponse, error) {
	items, err := s.foodRepository.GetFoodItemsByCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FoodItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toFoodItemResponse(item))
	}
	return result, nil
}

func (s *foodService) GetAllFoods(ctx context.Context, page, limit int) ([]domain.FoodItemResponse, int64, error) {
	items, count, err := s.foodRepository.GetAllFoodItems(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.FoodItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toFoodItemResponse(item))
	}
	return result, count, nil
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:          item.ID.String(),
		ItemName:    item.ItemName,
		Price:       item.Price,
		Category:    item.Category,
		Stock:       item.Stock,
		InStock:     item.InStock,
		ImageURL:    item.ImageURL,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
}
