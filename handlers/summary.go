package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetSummary handles GET /summary: the caller's financial snapshot.
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.store.Summarize(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// GetBalance handles GET /balance: the reconciled running balance. Recompute
// rather than trust the cache, so this endpoint doubles as self-healing.
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.store.RecomputeBalance(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}
