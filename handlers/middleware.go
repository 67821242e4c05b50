package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"expense-manager-go-be/store"
)

const (
	localUserID = "userID"
	localClaims = "claims"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload. Fresh marks tokens minted directly from a
// password login, as opposed to ones minted from a refresh token.
type Claims struct {
	Fresh     bool   `json:"fresh"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var (
	errMissingToken = errors.New("authorization_required")
	errTokenExpired = errors.New("token_expired")
	errTokenInvalid = errors.New("invalid_token")
	errTokenRevoked = errors.New("token_revoked")
	errStaleToken   = errors.New("fresh_token_required")
)

func (h *Handler) issueToken(userID uuid.UUID, tokenType string, fresh bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Fresh:     fresh,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}

// parseToken verifies the bearer token in the Authorization header and checks
// it against the revocation list.
func (h *Handler) parseToken(c *fiber.Ctx, tokenType string) (*Claims, error) {
	auth := c.Get(fiber.HeaderAuthorization)
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || raw == "" {
		return nil, errMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, errTokenInvalid
	}
	if claims.TokenType != tokenType {
		return nil, errTokenInvalid
	}

	revoked, err := h.store.IsTokenRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errTokenRevoked
	}
	return &claims, nil
}

// authError writes the 401 body for a token failure, in the same shape the
// API has always used, or defers to fail for storage errors.
func authError(c *fiber.Ctx, err error) error {
	messages := map[error]string{
		errMissingToken: "Request does not contain an access token.",
		errTokenExpired: "The token has expired.",
		errTokenInvalid: "Signature verification failed.",
		errTokenRevoked: "The token has been revoked.",
		errStaleToken:   "Fresh token required.",
	}
	if msg, ok := messages[err]; ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "message": msg})
	}
	return fail(c, err)
}

func (h *Handler) authenticate(c *fiber.Ctx, requireFresh bool) error {
	claims, err := h.parseToken(c, tokenTypeAccess)
	if err != nil {
		return authError(c, err)
	}
	if requireFresh && !claims.Fresh {
		return authError(c, errStaleToken)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authError(c, errTokenInvalid)
	}
	if _, err := h.store.GetUser(userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return authError(c, errTokenInvalid)
		}
		return fail(c, err)
	}
	c.Locals(localUserID, userID)
	c.Locals(localClaims, claims)
	return c.Next()
}

// RequireAuth guards routes behind a valid access token.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	return h.authenticate(c, false)
}

// RequireFreshAuth additionally demands a token minted from a password login,
// not a refresh. Guards expense creation.
func (h *Handler) RequireFreshAuth(c *fiber.Ctx) error {
	return h.authenticate(c, true)
}
