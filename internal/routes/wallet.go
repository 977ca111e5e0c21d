package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/viet-pay/viet_pay/internal/wallet"
)

// RegisterWalletRoutes wires the wallet endpoints. The idempotency
// middleware guards only the mutating routes; fetching a snapshot and
// issuing a payment reference perform no writes.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler, idem fiber.Handler) {
	mutation := func(handler fiber.Handler) []fiber.Handler {
		if idem == nil {
			return []fiber.Handler{handler}
		}
		return []fiber.Handler{idem, handler}
	}

	r.Post("/wallets", mutation(h.Create)...)
	r.Get("/wallets/:userId", h.Get)
	r.Post("/wallets/:userId/adjust", mutation(h.Adjust)...)
	r.Put("/wallets/:userId/status", mutation(h.SetStatus)...)
	r.Post("/wallets/:userId/payment-reference", h.PaymentReference)
}
