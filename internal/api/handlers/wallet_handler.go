package handlers

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/internal/api/presenters"
	"CanteenHub-Backend/pkg/wallet"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WalletHandler interface {
		AddMoney(c *fiber.Ctx) error
		DeductFromWallet(c *fiber.Ctx) error
		GetWallet(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
		validator     *validator.Validate
	}
)

func NewWalletHandler(walletService wallet.WalletService, validator *validator.Validate) WalletHandler {
	return &walletHandler{
		walletService: walletService,
		validator:     validator,
	}
}

func (h *walletHandler) AddMoney(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddMoneyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMoney, err)
	}

	res, err := h.walletService.AddMoney(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMoney, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddMoney, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddMoney)
}

func (h *walletHandler) DeductFromWallet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.DeductMoneyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeductMoney, err)
	}

	res, err := h.walletService.DeductMoney(c.Context(), *req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeductMoney, err)
		case errors.Is(err, domain.ErrInsufficientBalance):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeductMoney, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeductMoney, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeductMoney)
}

func (h *walletHandler) GetWallet(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.walletService.GetWallet(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetMe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetMe, nil)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMe)
}
