package order

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/internal/utils/storage"
	"CanteenHub-Backend/pkg/food"
	"CanteenHub-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderNumberAttempts = 3

type (
	OrderService interface {
		PlaceOrder(ctx context.Context, req domain.OrderFoodRequest, userID string) (domain.OrderFoodResponse, error)
		CancelOrder(ctx context.Context, req domain.CancelOrderRequest, requesterID string) error
		GetOrderList(ctx context.Context, req domain.GetOrderListRequest, page, limit int) ([]domain.OrderResponse, int64, error)
		GetUserOrderList(ctx context.Context, userID string) ([]domain.OrderResponse, error)
		UpdateOrderStatus(ctx context.Context, req domain.UpdateOrderStatusRequest) error
		AttachReceipt(ctx context.Context, req domain.AttachReceiptRequest) (domain.OrderResponse, error)
		ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) error
		GetOrderStats(ctx context.Context) (domain.OrderStatsResponse, error)
	}

	orderService struct {
		orderRepository OrderRepository
		foodRepository  food.FoodRepository
		userRepository  user.UserRepository
		s3              storage.AwsS3
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	foodRepository food.FoodRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		foodRepository:  foodRepository,
		userRepository:  userRepository,
		s3:              s3,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, req domain.OrderFoodRequest, userID string) (domain.OrderFoodResponse, error) {
	if len(req.Items) == 0 {
		return domain.OrderFoodResponse{}, domain.ErrEmptyCart
	}

	buyer, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderFoodResponse{}, domain.ErrUserNotFound
		}
		return domain.OrderFoodResponse{}, err
	}

	// Quantities are expressed by repetition in the cart.
	requested := map[string]int{}
	cart := make([]string, 0, len(req.Items))
	for _, raw := range req.Items {
		name := food.NormalizeItemName(raw)
		if requested[name] == 0 {
			cart = append(cart, name)
		}
		requested[name]++
	}

	items, err := s.foodRepository.GetFoodItemsByNames(ctx, cart)
	if err != nil {
		return domain.OrderFoodResponse{}, err
	}

	byName := make(map[string]*entities.FoodItem, len(items))
	for _, item := range items {
		byName[item.ItemName] = item
	}

	var missing []string
	for _, name := range cart {
		if byName[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.OrderFoodResponse{}, fmt.Errorf("%w: %s", domain.ErrItemsNotFound, strings.Join(missing, ", "))
	}

	var amount float64
	decrements := make([]StockDecrement, 0, len(cart))
	for _, name := range cart {
		item := byName[name]
		qty := requested[name]
		if item.Stock < qty {
			return domain.OrderFoodResponse{}, fmt.Errorf(
				"%w for %s: available %d, requested %d",
				domain.ErrInsufficientStock, name, item.Stock, qty,
			)
		}
		amount += item.Price * float64(qty)
		decrements = append(decrements, StockDecrement{FoodItemID: item.ID, Quantity: qty})
	}

	// One OrderItem row per purchased unit, in cart order, with the price
	// frozen at order time.
	orderItems := make([]*entities.OrderItem, 0, len(req.Items))
	summaries := make([]domain.OrderItemSummary, 0, len(req.Items))
	for _, raw := range req.Items {
		item := byName[food.NormalizeItemName(raw)]
		orderItems = append(orderItems, &entities.OrderItem{
			ID:         uuid.New(),
			FoodItemID: item.ID,
			ItemName:   item.ItemName,
			Price:      item.Price,
		})
		summaries = append(summaries, domain.OrderItemSummary{
			ItemName: item.ItemName,
			Price:    item.Price,
		})
	}

	paymentStatus := domain.PaymentStatusPending
	var charge *WalletCharge
	if req.PaymentMethod == domain.PaymentMethodWallet {
		paymentStatus = domain.PaymentStatusCompleted
		charge = &WalletCharge{UserID: buyer.ID, Amount: amount}
	}

	var order *entities.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order = &entities.Order{
			ID:            uuid.New(),
			OrderNumber:   generateOrderNumber(),
			UserID:        buyer.ID,
			OrderedBy:     buyer.Username,
			Amount:        amount,
			TotalPrice:    amount,
			Status:        domain.OrderStatusPending,
			PaymentStatus: paymentStatus,
			Pre:           req.Pre,
			QRCode:        "",
			Items:         orderItems,
		}
		order.QRCode = order.OrderNumber

		err = s.orderRepository.PlaceOrder(ctx, order, decrements, charge)
		if err == nil {
			break
		}
		// Only an order-number collision is worth retrying.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrInsufficientBalance) {
			return domain.OrderFoodResponse{}, err
		}
		return domain.OrderFoodResponse{}, fmt.Errorf("%w: %v", domain.ErrOrderPersistFailed, err)
	}

	return domain.OrderFoodResponse{
		OrderNumber:   order.OrderNumber,
		Amount:        order.Amount,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Pre:           order.Pre,
		Items:         summaries,
	}, nil
}

func (s *orderService) CancelOrder(ctx context.Context, req domain.CancelOrderRequest, requesterID string) error {
	requester, err := s.userRepository.GetUserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	order, err := s.orderRepository.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	if requester.Role != domain.RoleAdmin && order.OrderedBy != requester.Username {
		return domain.ErrForbidden
	}

	// Cancelled is terminal; a second cancellation must not refund twice.
	if order.Status == domain.OrderStatusCancelled {
		return domain.ErrInvalidTransition
	}

	// The cancellation bookkeeping lands on the owner, not the requester.
	owner := requester
	if order.OrderedBy != requester.Username {
		owner, err = s.userRepository.GetUserByUsername(ctx, order.OrderedBy)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
	}

	refund := order.TotalPrice
	if refund <= 0 {
		refund = order.Amount
	}

	var adminIDs []uuid.UUID
	var share float64
	if refund > 0 {
		admins, err := s.userRepository.ListAdmins(ctx)
		if err != nil {
			return err
		}
		for _, admin := range admins {
			adminIDs = append(adminIDs, admin.ID)
		}
		// Zero admins means the refund is unfunded; no debit occurs.
		if len(adminIDs) > 0 {
			share = refund / float64(len(adminIDs))
		}
	}

	if err := s.orderRepository.CancelOrder(ctx, order, owner.ID, requester.Username, refund, adminIDs, share); err != nil {
		return err
	}

	s.deleteReceiptArtifacts(order)
	return nil
}

// deleteReceiptArtifacts removes externally hosted receipt and QR images after
// the cancellation has committed. Failures are audit-logged and swallowed; the
// order record is already consistent.
func (s *orderService) deleteReceiptArtifacts(order *entities.Order) {
	for _, url := range []string{order.ReceiptImageURL, order.ReceiptImageURLNoBarcode, order.QRCode} {
		key, ok := s.s3.HostsURL(url)
		if !ok {
			continue
		}
		if err := s.s3.DeleteFile(key); err != nil {
			log.Printf("AUDIT orphaned artifact: order %s key %s: %v", order.OrderNumber, key, err)
		}
	}
}

func (s *orderService) GetOrderList(ctx context.Context, req domain.GetOrderListRequest, page, limit int) ([]domain.OrderResponse, int64, error) {
	orders, count, err := s.orderRepository.ListOrders(ctx, req.Status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, count, nil
}

func (s *orderService) GetUserOrderList(ctx context.Context, userID string) ([]domain.OrderResponse, error) {
	requester, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	orders, err := s.orderRepository.ListUserOrders(ctx, requester.Username)
	if err != nil {
		return nil, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, req domain.UpdateOrderStatusRequest) error {
	order, err := s.orderRepository.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	if !validTransition(order.Status, req.Status) {
		return domain.ErrInvalidTransition
	}

	return s.orderRepository.UpdateOrderFields(ctx, req.OrderNumber, map[string]interface{}{
		"status": req.Status,
	})
}

// validTransition enforces pending -> preparing -> completed; cancelled and
// completed are terminal. A pending order may complete directly.
func validTransition(from, to string) bool {
	switch from {
	case domain.OrderStatusPending:
		return to == domain.OrderStatusPreparing || to == domain.OrderStatusCompleted
	case domain.OrderStatusPreparing:
		return to == domain.OrderStatusCompleted
	default:
		return false
	}
}

func (s *orderService) AttachReceipt(ctx context.Context, req domain.AttachReceiptRequest) (domain.OrderResponse, error) {
	order, err := s.orderRepository.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}

	fields := map[string]interface{}{}

	if req.Receipt != nil {
		key, err := s.s3.UploadFile(order.OrderNumber, req.Receipt, "receipts", storage.AllowImage...)
		if err != nil {
			return domain.OrderResponse{}, err
		}
		url := s.s3.ObjectURL(key)
		fields["receipt_image_url"] = url
		fields["qr_code"] = url
		order.ReceiptImageURL = url
		order.QRCode = url
	}

	if req.ReceiptNoBarcode != nil {
		key, err := s.s3.UploadFile(order.OrderNumber+"-plain", req.ReceiptNoBarcode, "receipts", storage.AllowImage...)
		if err != nil {
			return domain.OrderResponse{}, err
		}
		url := s.s3.ObjectURL(key)
		fields["receipt_image_url_no_barcode"] = url
		order.ReceiptImageURLNoBarcode = url
	}

	if len(fields) > 0 {
		if err := s.orderRepository.UpdateOrderFields(ctx, order.OrderNumber, fields); err != nil {
			return domain.OrderResponse{}, err
		}
	}

	return toOrderResponse(order), nil
}

func (s *orderService) ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) error {
	if _, err := s.orderRepository.GetOrderByNumber(ctx, req.OrderNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	return s.orderRepository.IncrementScanCount(ctx, req.OrderNumber)
}

func (s *orderService) GetOrderStats(ctx context.Context) (domain.OrderStatsResponse, error) {
	stats, err := s.orderRepository.GetOrderStats(ctx)
	if err != nil {
		return domain.OrderStatsResponse{}, err
	}

	return domain.OrderStatsResponse{
		TotalOrders:     toInt64(stats["total_orders"]),
		PendingOrders:   toInt64(stats["pending_orders"]),
		PreparingOrders: toInt64(stats["preparing_orders"]),
		CompletedOrders: toInt64(stats["completed_orders"]),
		CancelledOrders: toInt64(stats["cancelled_orders"]),
		PreOrders:       toInt64(stats["pre_orders"]),
		TotalRevenue:    toFloat64(stats["total_revenue"]),
	}, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixNano(), rand.Intn(10000))
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	items := make([]domain.OrderItemSummary, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.OrderItemSummary{
			ItemName: item.ItemName,
			Price:    item.Price,
		})
	}

	return domain.OrderResponse{
		OrderNumber:     order.OrderNumber,
		OrderedBy:       order.OrderedBy,
		Amount:          order.Amount,
		TotalPrice:      order.TotalPrice,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		Pre:             order.Pre,
		QRCode:          order.QRCode,
		ReceiptImageURL: order.ReceiptImageURL,
		ScanCount:       order.ScanCount,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

func toInt64(v interface{}) int64 {
	n, _ := v.(int64)
	return n
}

func toFloat64(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
