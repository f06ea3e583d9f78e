package order_test

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/pkg/order"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore backs all fake repositories with one in-memory world so the
// service's cross-repository effects stay observable.
type fakeStore struct {
	users     map[string]*entities.User
	items     map[string]*entities.FoodItem
	orders    map[string]*entities.Order
	cancelled []*entities.CancelledOrder
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*entities.User{},
		items:  map[string]*entities.FoodItem{},
		orders: map[string]*entities.Order{},
	}
}

func (s *fakeStore) addUser(username, role string, balance float64) *entities.User {
	u := &entities.User{
		ID:            uuid.New(),
		Username:      username,
		Role:          role,
		WalletBalance: balance,
	}
	s.users[u.ID.String()] = u
	return u
}

func (s *fakeStore) addItem(name string, price float64, stock int) *entities.FoodItem {
	item := &entities.FoodItem{
		ID:       uuid.New(),
		ItemName: name,
		Price:    price,
		Stock:    stock,
		InStock:  stock > 0,
	}
	s.items[name] = item
	return item
}

func (s *fakeStore) itemByID(id uuid.UUID) *entities.FoodItem {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) error {
	r.store.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := r.store.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) CheckUserExists(ctx context.Context, username, rollNumber, phoneNumber string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entities.User) error {
	r.store.users[user.ID.String()] = user
	return nil
}

func (r *fakeUserRepo) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	var admins []*entities.User
	for _, u := range r.store.users {
		if u.Role == domain.RoleAdmin {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

func (r *fakeUserRepo) AddFriend(ctx context.Context, user, friend *entities.User) error { return nil }

func (r *fakeUserRepo) GetFriends(ctx context.Context, userID string) ([]*entities.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) IsFriend(ctx context.Context, userID, friendID string) (bool, error) {
	return false, nil
}

type fakeFoodRepo struct{ store *fakeStore }

func (r *fakeFoodRepo) AddFoodItem(ctx context.Context, item *entities.FoodItem) error {
	r.store.items[item.ItemName] = item
	return nil
}

func (r *fakeFoodRepo) GetFoodItemByName(ctx context.Context, itemName string) (*entities.FoodItem, error) {
	if item, ok := r.store.items[itemName]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFoodRepo) GetFoodItemsByNames(ctx context.Context, itemNames []string) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	for _, name := range itemNames {
		if item, ok := r.store.items[name]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeFoodRepo) UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	r.store.items[item.ItemName] = item
	return nil
}

func (r *fakeFoodRepo) DeleteFoodItem(ctx context.Context, itemName string) error {
	delete(r.store.items, itemName)
	return nil
}

func (r *fakeFoodRepo) GetFoodItemsByCategory(ctx context.Context, category string) ([]*entities.FoodItem, error) {
	return nil, nil
}

func (r *fakeFoodRepo) GetAllFoodItems(ctx context.Context, page, limit int) ([]*entities.FoodItem, int64, error) {
	return nil, 0, nil
}

// fakeOrderRepo mimics the transactional repository: every guard is checked
// before anything mutates, so a failed placement leaves no partial effects.
type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	if o, ok := r.store.orders[orderNumber]; ok {
		// Hand out a copy, as a real query would; later repository writes
		// must not reach through to a previously loaded struct.
		loaded := *o
		return &loaded, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) PlaceOrder(ctx context.Context, o *entities.Order, decrements []order.StockDecrement, charge *order.WalletCharge) error {
	if _, exists := r.store.orders[o.OrderNumber]; exists {
		return gorm.ErrDuplicatedKey
	}
	for _, dec := range decrements {
		item := r.store.itemByID(dec.FoodItemID)
		if item == nil || item.Stock < dec.Quantity {
			return domain.ErrInsufficientStock
		}
	}
	if charge != nil {
		buyer := r.store.users[charge.UserID.String()]
		if buyer == nil || buyer.WalletBalance < charge.Amount {
			return domain.ErrInsufficientBalance
		}
	}

	for _, dec := range decrements {
		item := r.store.itemByID(dec.FoodItemID)
		item.Stock -= dec.Quantity
		item.InStock = item.Stock > 0
	}
	if charge != nil {
		r.store.users[charge.UserID.String()].WalletBalance -= charge.Amount
	}
	r.store.orders[o.OrderNumber] = o
	return nil
}

func (r *fakeOrderRepo) CancelOrder(ctx context.Context, o *entities.Order, ownerID uuid.UUID, cancelledBy string, refund float64, adminIDs []uuid.UUID, share float64) error {
	stored := r.store.orders[o.OrderNumber]
	stored.Status = domain.OrderStatusCancelled
	stored.QRCode = ""
	stored.ReceiptImageURL = ""
	stored.ReceiptImageURLNoBarcode = ""

	r.store.cancelled = append(r.store.cancelled, &entities.CancelledOrder{
		ID:          uuid.New(),
		UserID:      ownerID,
		OrderNumber: o.OrderNumber,
		CancelledBy: cancelledBy,
	})

	owner := r.store.users[ownerID.String()]
	owner.CancelledCount++
	if refund > 0 {
		owner.WalletBalance += refund
		for _, adminID := range adminIDs {
			r.store.users[adminID.String()].WalletBalance -= share
		}
	}
	return nil
}

func (r *fakeOrderRepo) ListOrders(ctx context.Context, status string, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	for _, o := range r.store.orders {
		if status == "" || o.Status == status {
			orders = append(orders, o)
		}
	}
	return orders, int64(len(orders)), nil
}

func (r *fakeOrderRepo) ListUserOrders(ctx context.Context, username string) ([]*entities.Order, error) {
	var orders []*entities.Order
	for _, o := range r.store.orders {
		if o.OrderedBy == username && o.Status != domain.OrderStatusCancelled {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateOrderFields(ctx context.Context, orderNumber string, fields map[string]interface{}) error {
	o := r.store.orders[orderNumber]
	if status, ok := fields["status"].(string); ok {
		o.Status = status
	}
	if url, ok := fields["receipt_image_url"].(string); ok {
		o.ReceiptImageURL = url
	}
	if qr, ok := fields["qr_code"].(string); ok {
		o.QRCode = qr
	}
	return nil
}

func (r *fakeOrderRepo) IncrementScanCount(ctx context.Context, orderNumber string) error {
	r.store.orders[orderNumber].ScanCount++
	return nil
}

func (r *fakeOrderRepo) GetOrderStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
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

func newOrderService(store *fakeStore) (order.OrderService, *fakeS3) {
	s3 := &fakeS3{}
	svc := order.NewOrderService(
		&fakeOrderRepo{store: store},
		&fakeFoodRepo{store: store},
		&fakeUserRepo{store: store},
		s3,
	)
	return svc, s3
}

func TestPlaceOrderDecrementsStockAndWallet(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 100)
	store.addItem("tea", 10, 5)
	svc, _ := newOrderService(store)

	res, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		Items:         []string{"Tea", " TEA "},
		PaymentMethod: domain.PaymentMethodWallet,
	}, buyer.ID.String())
	require.NoError(t, err)

	assert.Equal(t, float64(20), res.Amount)
	assert.Equal(t, domain.OrderStatusPending, res.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, res.PaymentStatus)
	assert.Len(t, res.Items, 2)

	assert.Equal(t, float64(80), buyer.WalletBalance)
	assert.Equal(t, 3, store.items["tea"].Stock)
	assert.True(t, store.items["tea"].InStock)

	stored := store.orders[res.OrderNumber]
	require.NotNil(t, stored)
	assert.Equal(t, "asha", stored.OrderedBy)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, float64(10), stored.Items[0].Price)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 100)
	store.addItem("tea", 10, 2)
	svc, _ := newOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		Items:         []string{"tea", "tea", "tea"},
		PaymentMethod: domain.PaymentMethodWallet,
	}, buyer.ID.String())

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 2")
	assert.Contains(t, err.Error(), "requested 3")

	assert.Equal(t, 2, store.items["tea"].Stock)
	assert.Equal(t, float64(100), buyer.WalletBalance)
	assert.Empty(t, store.orders)
}

func TestPlaceOrderUnknownItemsListed(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 100)
	store.addItem("tea", 10, 5)
	svc, _ := newOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		Items:         []string{"tea", "samosa", "jalebi"},
		PaymentMethod: domain.PaymentMethodWallet,
	}, buyer.ID.String())

	require.ErrorIs(t, err, domain.ErrItemsNotFound)
	assert.Contains(t, err.Error(), "samosa")
	assert.Contains(t, err.Error(), "jalebi")
	assert.Equal(t, 5, store.items["tea"].Stock)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 100)
	svc, _ := newOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		PaymentMethod: domain.PaymentMethodWallet,
	}, buyer.ID.String())
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestPlaceOrderGatewayLeavesWalletAlone(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 5)
	store.addItem("tea", 10, 5)
	svc, _ := newOrderService(store)

	res, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		Items:         []string{"tea", "tea"},
		PaymentMethod: domain.PaymentMethodGateway,
	}, buyer.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPending, res.PaymentStatus)
	assert.Equal(t, float64(5), buyer.WalletBalance)
	assert.Equal(t, 3, store.items["tea"].Stock)
}

func TestPlaceOrderInsufficientBalanceRollsBack(t *testing.T) {
	store := newFakeStore()
	buyer := store.addUser("asha", domain.RoleStudent, 5)
	store.addItem("tea", 10, 5)
	svc, _ := newOrderService(store)

	_, err := svc.PlaceOrder(context.Background(), domain.OrderFoodRequest{
		Items:         []string{"tea", "tea"},
		PaymentMethod: domain.PaymentMethodWallet,
	}, buyer.ID.String())

	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, 5, store.items["tea"].Stock)
	assert.Equal(t, float64(5), buyer.WalletBalance)
	assert.Empty(t, store.orders)
}

func seedOrder(store *fakeStore, owner *entities.User, totalPrice float64) *entities.Order {
	o := &entities.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-1",
		UserID:      owner.ID,
		OrderedBy:   owner.Username,
		Amount:      totalPrice,
		TotalPrice:  totalPrice,
		Status:      domain.OrderStatusPending,
	}
	store.orders[o.OrderNumber] = o
	return o
}

func TestCancelOrderRefundSplitAcrossAdmins(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	admin1 := store.addUser("admin1", domain.RoleAdmin, 100)
	admin2 := store.addUser("admin2", domain.RoleAdmin, 200)
	seedOrder(store, owner, 50)
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, owner.ID.String())
	require.NoError(t, err)

	assert.Equal(t, float64(50), owner.WalletBalance)
	assert.Equal(t, float64(75), admin1.WalletBalance)
	assert.Equal(t, float64(175), admin2.WalletBalance)
	assert.Equal(t, 1, owner.CancelledCount)
	assert.Equal(t, domain.OrderStatusCancelled, store.orders["ORD-1"].Status)

	require.Len(t, store.cancelled, 1)
	assert.Equal(t, owner.ID, store.cancelled[0].UserID)
	assert.Equal(t, "asha", store.cancelled[0].CancelledBy)
}

func TestCancelOrderByAdminBooksAgainstOwner(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	admin := store.addUser("boss", domain.RoleAdmin, 100)
	seedOrder(store, owner, 40)
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, admin.ID.String())
	require.NoError(t, err)

	assert.Equal(t, float64(40), owner.WalletBalance)
	assert.Equal(t, 1, owner.CancelledCount)
	assert.Equal(t, 0, admin.CancelledCount)
	assert.Equal(t, float64(60), admin.WalletBalance)

	require.Len(t, store.cancelled, 1)
	assert.Equal(t, owner.ID, store.cancelled[0].UserID)
	assert.Equal(t, "boss", store.cancelled[0].CancelledBy)
}

func TestCancelOrderForbiddenForOtherStudent(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	other := store.addUser("ravi", domain.RoleStudent, 0)
	seedOrder(store, owner, 40)
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, other.ID.String())
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.OrderStatusPending, store.orders["ORD-1"].Status)
}

func TestCancelOrderAlreadyCancelled(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	o := seedOrder(store, owner, 40)
	o.Status = domain.OrderStatusCancelled
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, owner.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, float64(0), owner.WalletBalance)
}

func TestCancelOrderWithoutAdminsIsUnfunded(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	seedOrder(store, owner, 40)
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(40), owner.WalletBalance)
}

func TestCancelOrderDeletesHostedArtifacts(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	o := seedOrder(store, owner, 40)
	o.ReceiptImageURL = "https://bucket.s3.test/receipts/ORD-1"
	o.QRCode = "https://bucket.s3.test/receipts/ORD-1"
	svc, s3 := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-1"}, owner.ID.String())
	require.NoError(t, err)
	assert.Contains(t, s3.deleted, "receipts/ORD-1")
}

func TestCancelOrderNotFound(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	svc, _ := newOrderService(store)

	err := svc.CancelOrder(context.Background(), domain.CancelOrderRequest{OrderNumber: "ORD-missing"}, owner.ID.String())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCancelledOrderLeavesUserOrderList(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	seedOrder(store, owner, 40)
	keep := &entities.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-2",
		UserID:      owner.ID,
		OrderedBy:   owner.Username,
		Amount:      15,
		TotalPrice:  15,
		Status:      domain.OrderStatusPending,
	}
	store.orders[keep.OrderNumber] = keep
	svc, _ := newOrderService(store)
	ctx := context.Background()

	require.NoError(t, svc.CancelOrder(ctx, domain.CancelOrderRequest{OrderNumber: "ORD-1"}, owner.ID.String()))

	// Only the active order remains; the cancellation lives on as a
	// CancelledOrder record.
	orders, err := svc.GetUserOrderList(ctx, owner.ID.String())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-2", orders[0].OrderNumber)
	require.Len(t, store.cancelled, 1)
	assert.Equal(t, "ORD-1", store.cancelled[0].OrderNumber)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	seedOrder(store, owner, 40)
	svc, _ := newOrderService(store)
	ctx := context.Background()

	err := svc.UpdateOrderStatus(ctx, domain.UpdateOrderStatusRequest{OrderNumber: "ORD-1", Status: domain.OrderStatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, store.orders["ORD-1"].Status)

	err = svc.UpdateOrderStatus(ctx, domain.UpdateOrderStatusRequest{OrderNumber: "ORD-1", Status: domain.OrderStatusCompleted})
	require.NoError(t, err)

	err = svc.UpdateOrderStatus(ctx, domain.UpdateOrderStatusRequest{OrderNumber: "ORD-1", Status: domain.OrderStatusPreparing})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestScanReceiptIncrementsCount(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("asha", domain.RoleStudent, 0)
	seedOrder(store, owner, 40)
	svc, _ := newOrderService(store)

	require.NoError(t, svc.ScanReceipt(context.Background(), domain.ScanReceiptRequest{OrderNumber: "ORD-1"}))
	require.NoError(t, svc.ScanReceipt(context.Background(), domain.ScanReceiptRequest{OrderNumber: "ORD-1"}))
	assert.Equal(t, 2, store.orders["ORD-1"].ScanCount)
}
