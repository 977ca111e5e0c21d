package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/viet-pay/viet_pay/internal/money"
)

var validate = validator.New()

// Handler exposes wallet HTTP endpoints. It owns the translation between
// wire shapes and the service: decimal amount strings become minor units
// on the way in, and error kinds become HTTP status codes on the way out.
type Handler struct {
	service  *Service
	exponent int32
}

// NewHandler builds a wallet HTTP handler. exponent is the currency's
// minor-unit exponent (2 for cents, 0 for VND-style currencies).
func NewHandler(service *Service, exponent int32) *Handler {
	return &Handler{service: service, exponent: exponent}
}

type createRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type adjustRequest struct {
	Delta string `json:"delta" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=open locked"`
}

type paymentReferenceRequest struct {
	Amount string `json:"amount" validate:"required"`
	Note   string `json:"note"`
}

type walletResponse struct {
	UserID         string `json:"user_id"`
	Balance        int64  `json:"balance"`
	BalanceDecimal string `json:"balance_decimal"`
	Status         string `json:"status"`
	UpdatedAt      string `json:"updated_at"`
}

// Get returns the wallet snapshot for a user.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.service.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet":  h.render(w),
		"message": "wallet fetched",
	})
}

// Create provisions a wallet for a user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	w, err := h.service.Create(c.UserContext(), req.UserID)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"wallet":  h.render(w),
		"message": "wallet created",
	})
}

// Adjust applies a signed balance delta.
func (h *Handler) Adjust(c *fiber.Ctx) error {
	var req adjustRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	delta, err := money.ToMinorUnits(req.Delta, h.exponent)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.AdjustBalance(c.UserContext(), c.Params("userId"), delta)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet":  h.render(w),
		"message": "balance updated",
	})
}

// SetStatus locks or unlocks the wallet.
func (h *Handler) SetStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	w, msg, err := h.service.SetStatus(c.UserContext(), c.Params("userId"), Status(req.Status))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"wallet":  h.render(w),
		"message": msg,
	})
}

// PaymentReference issues a payment QR reference for the wallet.
func (h *Handler) PaymentReference(c *fiber.Ctx) error {
	var req paymentReferenceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	amount, err := money.ToMinorUnits(req.Amount, h.exponent)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	ref, err := h.service.IssuePaymentReference(c.UserContext(), c.Params("userId"), amount, req.Note)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"qr": ref})
}

func (h *Handler) render(w Wallet) walletResponse {
	return walletResponse{
		UserID:         w.UserID,
		Balance:        w.Balance,
		BalanceDecimal: money.FromMinorUnits(w.Balance, h.exponent),
		Status:         string(w.Status),
		UpdatedAt:      w.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// mapError translates the service's closed error set into HTTP statuses.
// The service never formats wire-level errors itself.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrWalletLocked):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidArgument):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
