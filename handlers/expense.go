package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expense-manager-go-be/store"
)

// ExpenseRequest is the payload for creating an expense. Amount is signed:
// positive for income, negative for spending.
type ExpenseRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  uuid.UUID       `json:"category_id"`
}

// ExpenseUpdateRequest enumerates the patchable fields; absent fields keep
// their current value.
type ExpenseUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

// CreateExpense handles POST /expense. Requires a fresh token.
func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	expense, err := h.store.CreateExpense(currentUserID(c), req.CategoryID, req.Name, req.Description, req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// ListExpenses handles GET /expense, scoped to the caller.
func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.store.ListExpensesForUser(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(expenses)
}

// GetExpense handles GET /expense/:id.
func (h *Handler) GetExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}

	expense, err := h.store.GetExpense(id, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(expense)
}

// UpdateExpense handles PUT /expense/:id.
func (h *Handler) UpdateExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}

	var req ExpenseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	expense, err := h.store.UpdateExpense(id, currentUserID(c), store.ExpensePatch{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(expense)
}

// DeleteExpense handles DELETE /expense/:id.
func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}

	if err := h.store.DeleteExpense(id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}
