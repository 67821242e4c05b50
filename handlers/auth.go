package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CredentialsRequest is the payload for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Register creates a new user account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.store.RegisterUser(req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully.",
		"id":      user.ID,
	})
}

// Login verifies credentials and issues a fresh access token plus a refresh
// token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.store.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	access, err := h.issueToken(user.ID, tokenTypeAccess, true, h.accessTTL)
	if err != nil {
		return fail(c, err)
	}
	refresh, err := h.issueToken(user.ID, tokenTypeRefresh, false, h.refreshTTL)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(TokenResponse{AccessToken: access, RefreshToken: refresh})
}

// Refresh exchanges a valid refresh token for a new, non-fresh access token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	claims, err := h.parseToken(c, tokenTypeRefresh)
	if err != nil {
		return authError(c, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authError(c, errTokenInvalid)
	}

	access, err := h.issueToken(userID, tokenTypeAccess, false, h.accessTTL)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(TokenResponse{AccessToken: access})
}

// Logout revokes the presented access token. The revocation outlives process
// restarts and expires together with the token itself.
func (h *Handler) Logout(c *fiber.Ctx) error {
	claims, err := h.parseToken(c, tokenTypeAccess)
	if err != nil {
		return authError(c, err)
	}
	if err := h.store.RevokeToken(claims.ID, claims.ExpiresAt.Time); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}
