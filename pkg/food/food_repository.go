package food

import (
	"CanteenHub-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, item *entities.FoodItem) error
		GetFoodItemByName(ctx context.Context, itemName string) (*entities.FoodItem, error)
		GetFoodItemsByNames(ctx context.Context, itemNames []string) ([]*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, itemName string) error
		GetFoodItemsByCategory(ctx context.Context, category string) ([]*entities.FoodItem, error)
		GetAllFoodItems(ctx context.Context, page, limit int) ([]*entities.FoodItem, int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *foodRepository) GetFoodItemByName(ctx context.Context, itemName string) (*entities.FoodItem, error) {
	var item entities.FoodItem
	if err := r.db.WithContext(ctx).Where("item_name = ?", itemName).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodRepository) GetFoodItemsByNames(ctx context.Context, itemNames []string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("item_name IN ?", itemNames).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, itemName string) error {
	return r.db.WithContext(ctx).Where("item_name = ?", itemName).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItemsByCategory(ctx context.Context, category string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("item_name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *foodRepository) GetAllFoodItems(ctx context.Context, page, limit int) ([]*entities.FoodItem, int64, error) {
	var items []*entities.FoodItem
	var count int64

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.FoodItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("category asc, item_name asc").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}
