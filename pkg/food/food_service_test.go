package food_test

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/pkg/food"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFoodRepo struct {
	items map[string]*entities.FoodItem
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{items: map[string]*entities.FoodItem{}}
}

func (r *fakeFoodRepo) AddFoodItem(ctx context.Context, item *entities.FoodItem) error {
	r.items[item.ItemName] = item
	return nil
}

func (r *fakeFoodRepo) GetFoodItemByName(ctx context.Context, itemName string) (*entities.FoodItem, error) {
	if item, ok := r.items[itemName]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFoodRepo) GetFoodItemsByNames(ctx context.Context, itemNames []string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	for _, name := range itemNames {
		if item, ok := r.items[name]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeFoodRepo) UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	r.items[item.ItemName] = item
	return nil
}

func (r *fakeFoodRepo) DeleteFoodItem(ctx context.Context, itemName string) error {
	delete(r.items, itemName)
	return nil
}

func (r *fakeFoodRepo) GetFoodItemsByCategory(ctx context.Context, category string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	for _, item := range r.items {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeFoodRepo) GetAllFoodItems(ctx context.Context, page, limit int) ([]*entities.FoodItem, int64, error) {
	var items []*entities.FoodItem
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, int64(len(items)), nil
}

type fakeS3 struct {
	deleted []string
}

func (s *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, dir string, allowedTypes ...string) (string, error) {
	return dir + "/" + fileName, nil
}

func (s *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) ObjectURL(objectKey string) string {
	return "https://bucket.s3.test/" + objectKey
}

func (s *fakeS3) HostsURL(url string) (string, bool) {
	const prefix = "https://bucket.s3.test/"
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):], true
	}
	return "", false
}

func TestNormalizeItemName(t *testing.T) {
	assert.Equal(t, "masala dosa", food.NormalizeItemName("  Masala Dosa "))
	assert.Equal(t, "tea", food.NormalizeItemName("TEA"))
}

func TestAddItemNormalizesName(t *testing.T) {
	repo := newFakeFoodRepo()
	svc := food.NewFoodService(repo, &fakeS3{})

	res, err := svc.AddItem(context.Background(), domain.AddFoodItemRequest{
		ItemName: " Masala Dosa ",
		Price:    40,
		Category: domain.CategoryBreakfast,
		Stock:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, "masala dosa", res.ItemName)
	assert.True(t, res.InStock)
	_, ok := repo.items["masala dosa"]
	assert.True(t, ok)
}

func TestAddItemDuplicate(t *testing.T) {
	repo := newFakeFoodRepo()
	repo.items["tea"] = &entities.FoodItem{ID: uuid.New(), ItemName: "tea"}
	svc := food.NewFoodService(repo, &fakeS3{})

	_, err := svc.AddItem(context.Background(), domain.AddFoodItemRequest{
		ItemName: "TEA",
		Price:    10,
		Category: domain.CategoryDinner,
		Stock:    5,
	})
	require.ErrorIs(t, err, domain.ErrFoodItemAlreadyExists)
}

func TestAddItemRejectsNegativeValues(t *testing.T) {
	svc := food.NewFoodService(newFakeFoodRepo(), &fakeS3{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, domain.AddFoodItemRequest{ItemName: "tea", Price: -1, Stock: 5})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.AddItem(ctx, domain.AddFoodItemRequest{ItemName: "tea", Price: 10, Stock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestUpdateItemRecomputesInStock(t *testing.T) {
	repo := newFakeFoodRepo()
	repo.items["tea"] = &entities.FoodItem{ID: uuid.New(), ItemName: "tea", Price: 10, Stock: 5, InStock: true}
	svc := food.NewFoodService(repo, &fakeS3{})

	zero := 0
	require.NoError(t, svc.UpdateItem(context.Background(), domain.UpdateFoodItemRequest{
		ItemName: "tea",
		Stock:    &zero,
	}))

	item := repo.items["tea"]
	assert.Equal(t, 0, item.Stock)
	assert.False(t, item.InStock)
	// Untouched fields keep their values.
	assert.Equal(t, float64(10), item.Price)
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := food.NewFoodService(newFakeFoodRepo(), &fakeS3{})

	err := svc.UpdateItem(context.Background(), domain.UpdateFoodItemRequest{ItemName: "ghost"})
	require.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestRemoveItemDeletesHostedImage(t *testing.T) {
	repo := newFakeFoodRepo()
	repo.items["tea"] = &entities.FoodItem{
		ID:       uuid.New(),
		ItemName: "tea",
		ImageURL: "https://bucket.s3.test/food-items/abc",
	}
	s3 := &fakeS3{}
	svc := food.NewFoodService(repo, s3)

	require.NoError(t, svc.RemoveItem(context.Background(), domain.RemoveFoodItemRequest{ItemName: "Tea"}))
	_, ok := repo.items["tea"]
	assert.False(t, ok)
	assert.Contains(t, s3.deleted, "food-items/abc")
}
