package order

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// StockDecrement is one item's share of a cart, applied as a
	// conditional decrement so concurrent orders cannot oversell.
	StockDecrement struct {
		FoodItemID uuid.UUID
		Quantity   int
	}

	// WalletCharge debits the buyer inside the placement transaction.
	WalletCharge struct {
		UserID uuid.UUID
		Amount float64
	}

	OrderRepository interface {
		GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
		// PlaceOrder runs the stock decrements, the optional wallet
		// charge and the order insert as one transaction. Guard
		// failures surface as domain.ErrInsufficientStock or
		// domain.ErrInsufficientBalance and roll everything back.
		PlaceOrder(ctx context.Context, order *entities.Order, decrements []StockDecrement, charge *WalletCharge) error
		// CancelOrder transitions the order, records the cancellation
		// against the owner, credits the refund and splits the debit
		// across the admin pool, all in one transaction. Admin debits
		// carry no balance floor. Stock is deliberately not restored.
		CancelOrder(ctx context.Context, order *entities.Order, ownerID uuid.UUID, cancelledBy string, refund float64, adminIDs []uuid.UUID, share float64) error
		ListOrders(ctx context.Context, status string, page, limit int) ([]*entities.Order, int64, error)
		ListUserOrders(ctx context.Context, username string) ([]*entities.Order, error)
		UpdateOrderFields(ctx context.Context, orderNumber string, fields map[string]interface{}) error
		IncrementScanCount(ctx context.Context, orderNumber string) error
		GetOrderStats(ctx context.Context) (map[string]interface{}, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) PlaceOrder(ctx context.Context, order *entities.Order, decrements []StockDecrement, charge *WalletCharge) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dec := range decrements {
			// Guard: stock must still cover the request at write time.
			res := tx.Model(&entities.FoodItem{}).
				Where("id = ? AND stock >= ?", dec.FoodItemID, dec.Quantity).
				Updates(map[string]interface{}{
					"stock":    gorm.Expr("stock - ?", dec.Quantity),
					"in_stock": gorm.Expr("stock - ? > 0", dec.Quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrInsufficientStock
			}
		}

		if charge != nil {
			res := tx.Model(&entities.User{}).
				Where("id = ? AND wallet_balance >= ?", charge.UserID, charge.Amount).
				Update("wallet_balance", gorm.Expr("wallet_balance - ?", charge.Amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrInsufficientBalance
			}
		}

		return tx.Create(order).Error
	})
}

func (r *orderRepository) CancelOrder(ctx context.Context, order *entities.Order, ownerID uuid.UUID, cancelledBy string, refund float64, adminIDs []uuid.UUID, share float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Order{}).
			Where("order_number = ?", order.OrderNumber).
			Updates(map[string]interface{}{
				"status":                       domain.OrderStatusCancelled,
				"qr_code":                      "",
				"receipt_image_url":            "",
				"receipt_image_url_no_barcode": "",
			}).Error; err != nil {
			return err
		}

		cancelled := &entities.CancelledOrder{
			ID:          uuid.New(),
			UserID:      ownerID,
			OrderNumber: order.OrderNumber,
			CancelledBy: cancelledBy,
		}
		if err := tx.Create(cancelled).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.User{}).
			Where("id = ?", ownerID).
			Update("cancelled_count", gorm.Expr("cancelled_count + 1")).Error; err != nil {
			return err
		}

		if refund <= 0 {
			return nil
		}

		if err := tx.Model(&entities.User{}).
			Where("id = ?", ownerID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", refund)).Error; err != nil {
			return err
		}

		// Admin balances may go negative here; that asymmetry is intended.
		for _, adminID := range adminIDs {
			if err := tx.Model(&entities.User{}).
				Where("id = ?", adminID).
				Update("wallet_balance", gorm.Expr("wallet_balance - ?", share)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *orderRepository) ListOrders(ctx context.Context, status string, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Items").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

// ListUserOrders returns the owner's active orders. Cancelled orders are
// excluded; their history lives in cancelled_orders.
func (r *orderRepository) ListUserOrders(ctx context.Context, username string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("ordered_by = ? AND status <> ?", username, domain.OrderStatusCancelled).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderFields(ctx context.Context, orderNumber string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("order_number = ?", orderNumber).
		Updates(fields).Error
}

func (r *orderRepository) IncrementScanCount(ctx context.Context, orderNumber string) error {
	return r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("order_number = ?", orderNumber).
		Update("scan_count", gorm.Expr("scan_count + 1")).Error
}

func (r *orderRepository) GetOrderStats(ctx context.Context) (map[string]interface{}, error) {
	var totalOrders, preOrders int64
	statusCounts := map[string]int64{}

	if err := r.db.WithContext(ctx).Model(&entities.Order{}).Count(&totalOrders).Error; err != nil {
		return nil, err
	}

	for _, status := range []string{
		domain.OrderStatusPending,
		domain.OrderStatusPreparing,
		domain.OrderStatusCompleted,
		domain.OrderStatusCancelled,
	} {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entities.Order{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return nil, err
		}
		statusCounts[status] = count
	}

	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("pre = ?", true).
		Count(&preOrders).Error; err != nil {
		return nil, err
	}

	var totalRevenue float64
	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("status <> ? AND payment_status = ?", domain.OrderStatusCancelled, domain.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalRevenue); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_orders":     totalOrders,
		"pending_orders":   statusCounts[domain.OrderStatusPending],
		"preparing_orders": statusCounts[domain.OrderStatusPreparing],
		"completed_orders": statusCounts[domain.OrderStatusCompleted],
		"cancelled_orders": statusCounts[domain.OrderStatusCancelled],
		"pre_orders":       preOrders,
		"total_revenue":    totalRevenue,
	}, nil
}
