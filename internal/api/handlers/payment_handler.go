package handlers

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/internal/api/presenters"
	"CanteenHub-Backend/pkg/payment"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PaymentHandler interface {
		Checkout(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) Checkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CheckoutRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	res, err := h.paymentService.CreateTransaction(c.Context(), *req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCheckout, err)
		case errors.Is(err, domain.ErrOrderNotPayable):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCheckout, err)
		case errors.Is(err, domain.ErrPaymentFailed):
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedCheckout, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCheckout, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCheckout)
}

func (h *paymentHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	notification := new(domain.MidtransNotification)

	if err := c.BodyParser(notification); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.paymentService.HandleNotification(c.Context(), *notification); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedWebhook, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedWebhook, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
