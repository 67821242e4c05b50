package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expense-manager-go-be/config"
	"expense-manager-go-be/store"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	store      *store.Store
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New wires the handler set to a store and the auth settings.
func New(s *store.Store, cfg *config.Config) *Handler {
	return &Handler{
		store:      s,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// fail maps a store error to its HTTP status and writes the JSON error body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, store.ErrDuplicateName):
		status = fiber.StatusConflict
	case errors.Is(err, store.ErrValidation):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}
