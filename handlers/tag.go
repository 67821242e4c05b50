package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetTag handles GET /tag/:id.
func (h *Handler) GetTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tag id"})
	}

	tag, err := h.store.GetTag(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tag)
}

// DeleteTag handles DELETE /tag/:id.
func (h *Handler) DeleteTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tag id"})
	}

	if err := h.store.DeleteTag(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}

// LinkExpenseTag handles POST /expense/:id/tag/:tagId.
func (h *Handler) LinkExpenseTag(c *fiber.Ctx) error {
	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}
	tagID, err := uuid.Parse(c.Params("tagId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tag id"})
	}

	// Scope the expense to the caller before touching links.
	if _, err := h.store.GetExpense(expenseID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	if err := h.store.LinkTag(expenseID, tagID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag linked to expense"})
}

// UnlinkExpenseTag handles DELETE /expense/:id/tag/:tagId.
func (h *Handler) UnlinkExpenseTag(c *fiber.Ctx) error {
	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}
	tagID, err := uuid.Parse(c.Params("tagId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tag id"})
	}

	if _, err := h.store.GetExpense(expenseID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	if err := h.store.UnlinkTag(expenseID, tagID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag unlinked from expense"})
}
