package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CategoryRequest is the payload for creating a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// TagRequest is the payload for creating a tag under a category.
type TagRequest struct {
	Name string `json:"name"`
}

// CreateCategory handles POST /category.
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	category, err := h.store.CreateCategory(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// ListCategories handles GET /category.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /category/:id.
func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}

	category, err := h.store.GetCategory(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /category/:id. The delete cascades to the
// category's expenses and tags and settles affected balances.
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}

	if err := h.store.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// ListCategoryTags handles GET /category/:id/tag.
func (h *Handler) ListCategoryTags(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}

	tags, err := h.store.ListTagsForCategory(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tags)
}

// CreateCategoryTag handles POST /category/:id/tag.
func (h *Handler) CreateCategoryTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category id"})
	}

	var req TagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tag, err := h.store.CreateTag(id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}
