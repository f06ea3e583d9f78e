package handlers

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/internal/api/presenters"
	"CanteenHub-Backend/pkg/order"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		OrderFood(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error
		GetOrderList(c *fiber.Ctx) error
		GetUserOrderList(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
		AttachReceipt(c *fiber.Ctx) error
		ScanReceipt(c *fiber.Ctx) error
		GetOrderStats(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) OrderFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.OrderFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOrderFood, err)
	}

	res, err := h.orderService.PlaceOrder(c.Context(), *req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart),
			errors.Is(err, domain.ErrInsufficientStock),
			errors.Is(err, domain.ErrInsufficientBalance):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOrderFood, err)
		case errors.Is(err, domain.ErrItemsNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedOrderFood, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedOrderFood, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedOrderFood, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessOrderFood)
}

func (h *orderHandler) CancelOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CancelOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelOrder, err)
	}

	if err := h.orderService.CancelOrder(c.Context(), *req, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCancelOrder, err)
		case errors.Is(err, domain.ErrForbidden):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCancelOrder, err)
		case errors.Is(err, domain.ErrInvalidTransition):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCancelOrder, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCancelOrder, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelOrder)
}

func (h *orderHandler) GetOrderList(c *fiber.Ctx) error {
	req := new(domain.GetOrderListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrderList, err)
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.orderService.GetOrderList(c.Context(), *req, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetOrderList, nil)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrderList)
}

func (h *orderHandler) GetUserOrderList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	orders, err := h.orderService.GetUserOrderList(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetUserOrderList, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetUserOrderList, nil)
	}

	return presenters.SuccessResponse(c, orders, fiber.StatusOK, domain.MessageSuccessGetUserOrderList)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateOrderStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	if err := h.orderService.UpdateOrderStatus(c.Context(), *req); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateStatus, err)
		case errors.Is(err, domain.ErrInvalidTransition):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedUpdateStatus, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateStatus, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *orderHandler) AttachReceipt(c *fiber.Ctx) error {
	req := new(domain.AttachReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if file, err := c.FormFile("receipt"); err == nil {
		req.Receipt = file
	}
	if file, err := c.FormFile("receipt_no_barcode"); err == nil {
		req.ReceiptNoBarcode = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachReceipt, err)
	}

	res, err := h.orderService.AttachReceipt(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAttachReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAttachReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAttachReceipt)
}

func (h *orderHandler) ScanReceipt(c *fiber.Ctx) error {
	req := new(domain.ScanReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanReceipt, err)
	}

	if err := h.orderService.ScanReceipt(c.Context(), *req); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedScanReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScanReceipt, nil)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessScanReceipt)
}

func (h *orderHandler) GetOrderStats(c *fiber.Ctx) error {
	stats, err := h.orderService.GetOrderStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetOrderStats, nil)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetOrderStats)
}
