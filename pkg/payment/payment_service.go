package payment

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/internal/utils"
	"CanteenHub-Backend/pkg/order"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	PaymentService interface {
		CreateTransaction(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error)
		HandleNotification(ctx context.Context, notification domain.MidtransNotification) error
	}

	paymentService struct {
		paymentRepository PaymentRepository
		orderRepository   order.OrderRepository
		snapClient        snap.Client
		coreClient        coreapi.Client
	}
)

func NewPaymentService(paymentRepository PaymentRepository, orderRepository order.OrderRepository) PaymentService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(utils.GetConfig("SERVER_KEY"), env)

	var coreClient coreapi.Client
	coreClient.New(utils.GetConfig("SERVER_KEY"), env)

	return &paymentService{
		paymentRepository: paymentRepository,
		orderRepository:   orderRepository,
		snapClient:        snapClient,
		coreClient:        coreClient,
	}
}

func (s *paymentService) CreateTransaction(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error) {
	ord, err := s.orderRepository.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CheckoutResponse{}, domain.ErrOrderNotFound
		}
		return domain.CheckoutResponse{}, err
	}

	if ord.PaymentStatus != domain.PaymentStatusPending || ord.Status == domain.OrderStatusCancelled {
		return domain.CheckoutResponse{}, domain.ErrOrderNotPayable
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CheckoutResponse{}, domain.ErrParseUUID
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  ord.OrderNumber,
			GrossAmt: int64(ord.Amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return domain.CheckoutResponse{}, domain.ErrPaymentFailed
	}

	tx := &entities.PaymentTransaction{
		ID:          uuid.New(),
		UserID:      userUUID,
		OrderNumber: ord.OrderNumber,
		Amount:      ord.Amount,
		Status:      "pending",
		SnapToken:   snapResp.Token,
		InvoiceURL:  snapResp.RedirectURL,
	}
	if err := s.paymentRepository.CreateTransaction(ctx, tx); err != nil {
		return domain.CheckoutResponse{}, err
	}

	return domain.CheckoutResponse{
		TransactionID: tx.ID.String(),
		SnapToken:     tx.SnapToken,
		InvoiceURL:    tx.InvoiceURL,
	}, nil
}

// HandleNotification re-checks the transaction status against midtrans rather
// than trusting the webhook body.
func (s *paymentService) HandleNotification(ctx context.Context, notification domain.MidtransNotification) error {
	if _, err := s.paymentRepository.GetTransactionByOrderNumber(ctx, notification.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	statusResp, checkErr := s.coreClient.CheckTransaction(notification.OrderID)
	if checkErr != nil || statusResp == nil {
		return domain.ErrPaymentFailed
	}

	paymentStatus := ""
	switch statusResp.TransactionStatus {
	case "capture":
		if statusResp.FraudStatus == "accept" {
			paymentStatus = domain.PaymentStatusCompleted
		}
	case "settlement":
		paymentStatus = domain.PaymentStatusCompleted
	case "deny", "cancel", "expire":
		paymentStatus = domain.PaymentStatusFailed
	}

	if err := s.paymentRepository.UpdateTransactionStatus(ctx, notification.OrderID, statusResp.TransactionStatus); err != nil {
		return err
	}

	if paymentStatus == "" {
		return nil
	}

	return s.orderRepository.UpdateOrderFields(ctx, notification.OrderID, map[string]interface{}{
		"payment_status": paymentStatus,
	})
}
