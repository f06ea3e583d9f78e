package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessOrderFood        = "order placed successfully"
	MessageSuccessCancelOrder      = "order cancelled successfully"
	MessageSuccessGetOrderList     = "orders retrieved successfully"
	MessageSuccessGetUserOrderList = "user orders retrieved successfully"
	MessageSuccessUpdateStatus     = "order status updated successfully"
	MessageSuccessAttachReceipt    = "receipt attached successfully"
	MessageSuccessScanReceipt      = "receipt scanned successfully"
	MessageSuccessGetOrderStats    = "order statistics retrieved successfully"

	MessageFailedOrderFood        = "failed to place order"
	MessageFailedCancelOrder      = "failed to cancel order"
	MessageFailedGetOrderList     = "failed to retrieve orders"
	MessageFailedGetUserOrderList = "failed to retrieve user orders"
	MessageFailedUpdateStatus     = "failed to update order status"
	MessageFailedAttachReceipt    = "failed to attach receipt"
	MessageFailedScanReceipt      = "failed to scan receipt"
	MessageFailedGetOrderStats    = "failed to retrieve order statistics"

	ErrEmptyCart          = errors.New("cart is empty")
	ErrItemsNotFound      = errors.New("items not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderPersistFailed = errors.New("failed to persist order")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("not allowed to access this order")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrOrderNotPayable    = errors.New("order is not awaiting payment")
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	PaymentMethodWallet  = "wallet"
	PaymentMethodGateway = "gateway"
)

type (
	OrderFoodRequest struct {
		Items         []string `json:"items" validate:"required,min=1,dive,required"`
		Pre           bool     `json:"pre"`
		PaymentMethod string   `json:"payment_method" validate:"required,oneof=wallet gateway"`
	}

	OrderFoodResponse struct {
		OrderNumber   string             `json:"order_number"`
		Amount        float64            `json:"amount"`
		Status        string             `json:"status"`
		PaymentStatus string             `json:"payment_status"`
		Pre           bool               `json:"pre"`
		Items         []OrderItemSummary `json:"items"`
	}

	OrderItemSummary struct {
		ItemName string  `json:"item_name"`
		Price    float64 `json:"price"`
	}

	CancelOrderRequest struct {
		OrderNumber string `json:"order_number" validate:"required"`
	}

	GetOrderListRequest struct {
		Status string `json:"status" validate:"omitempty,oneof=pending preparing cancelled completed"`
	}

	UpdateOrderStatusRequest struct {
		OrderNumber string `json:"order_number" validate:"required"`
		Status      string `json:"status" validate:"required,oneof=preparing completed"`
	}

	AttachReceiptRequest struct {
		OrderNumber    string                `json:"order_number" form:"order_number" validate:"required"`
		Receipt        *multipart.FileHeader `json:"-" form:"receipt"`
		ReceiptNoBarcode *multipart.FileHeader `json:"-" form:"receipt_no_barcode"`
	}

	ScanReceiptRequest struct {
		OrderNumber string `json:"order_number" validate:"required"`
	}

	OrderResponse struct {
		OrderNumber   string             `json:"order_number"`
		OrderedBy     string             `json:"ordered_by"`
		Amount        float64            `json:"amount"`
		TotalPrice    float64            `json:"total_price"`
		Status        string             `json:"status"`
		PaymentStatus string             `json:"payment_status"`
		Pre           bool               `json:"pre"`
		QRCode        string             `json:"qr_code,omitempty"`
		ReceiptImageURL string           `json:"receipt_image_url,omitempty"`
		ScanCount     int                `json:"scan_count"`
		Items         []OrderItemSummary `json:"items"`
		CreatedAt     time.Time          `json:"created_at"`
	}

	OrderStatsResponse struct {
		TotalOrders     int64   `json:"total_orders"`
		PendingOrders   int64   `json:"pending_orders"`
		PreparingOrders int64   `json:"preparing_orders"`
		CompletedOrders int64   `json:"completed_orders"`
		CancelledOrders int64   `json:"cancelled_orders"`
		PreOrders       int64   `json:"pre_orders"`
		TotalRevenue    float64 `json:"total_revenue"`
	}
)
