package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"expense-manager-go-be/config"
	"expense-manager-go-be/database"
	"expense-manager-go-be/store"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true // mirrors main
	os.Exit(m.Run())
}

// newTestApp wires the full route table over an in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
	h := New(store.New(db), cfg)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	api.Post("/logout", h.Logout)
	api.Get("/category", h.ListCategories)
	api.Post("/category", h.RequireAuth, h.CreateCategory)
	api.Get("/category/:id", h.GetCategory)
	api.Delete("/category/:id", h.RequireAuth, h.DeleteCategory)
	api.Get("/category/:id/tag", h.ListCategoryTags)
	api.Post("/category/:id/tag", h.RequireAuth, h.CreateCategoryTag)
	api.Get("/tag/:id", h.RequireAuth, h.GetTag)
	api.Delete("/tag/:id", h.RequireAuth, h.DeleteTag)
	api.Get("/expense", h.RequireAuth, h.ListExpenses)
	api.Post("/expense", h.RequireFreshAuth, h.CreateExpense)
	api.Get("/expense/:id", h.RequireAuth, h.GetExpense)
	api.Put("/expense/:id", h.RequireAuth, h.UpdateExpense)
	api.Delete("/expense/:id", h.RequireAuth, h.DeleteExpense)
	api.Post("/expense/:id/tag/:tagId", h.RequireAuth, h.LinkExpenseTag)
	api.Delete("/expense/:id/tag/:tagId", h.RequireAuth, h.UnlinkExpenseTag)
	api.Get("/summary", h.RequireAuth, h.GetSummary)
	api.Get("/balance", h.RequireAuth, h.GetBalance)
	return app
}

// request sends a JSON request and decodes the JSON response body.
func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// signup registers and logs a user in, returning the token pair.
func signup(t *testing.T, app *fiber.App, username string) (access, refresh string) {
	t.Helper()

	creds := fiber.Map{"username": username, "password": "s3cret"}
	status, _ := request(t, app, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	access, _ = body["access_token"].(string)
	refresh, _ = body["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, http.MethodPost, "/register", "", fiber.Map{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = request(t, app, http.MethodPost, "/register", "", fiber.Map{"username": "alice", "password": "other"})
	require.Equal(t, http.StatusConflict, status)

	status, _ = request(t, app, http.MethodPost, "/login", "", fiber.Map{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := request(t, app, http.MethodPost, "/login", "", fiber.Map{"username": "alice", "password": "s3cret"})
	require.Equal(t, http.StatusOK, status)
	access := body["access_token"].(string)

	status, _ = request(t, app, http.MethodGet, "/expense", access, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = request(t, app, http.MethodGet, "/expense", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "authorization_required", body["error"])

	// Logout kills the token for good.
	status, _ = request(t, app, http.MethodPost, "/logout", access, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = request(t, app, http.MethodGet, "/expense", access, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "token_revoked", body["error"])
}

func TestRefreshTokenIsNotFresh(t *testing.T) {
	app := newTestApp(t)
	access, refresh := signup(t, app, "alice")

	status, body := request(t, app, http.MethodPost, "/refresh", refresh, nil)
	require.Equal(t, http.StatusOK, status)
	refreshed := body["access_token"].(string)

	// A refresh token itself never passes the access gate.
	status, _ = request(t, app, http.MethodGet, "/expense", refresh, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// The refreshed access token reads fine but cannot create expenses.
	status, _ = request(t, app, http.MethodGet, "/expense", refreshed, nil)
	require.Equal(t, http.StatusOK, status)

	status, catBody := request(t, app, http.MethodPost, "/category", access, fiber.Map{"name": "Food"})
	require.Equal(t, http.StatusCreated, status)

	expense := fiber.Map{"name": "coffee", "amount": -3.5, "category_id": catBody["id"]}
	status, body = request(t, app, http.MethodPost, "/expense", refreshed, expense)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "fresh_token_required", body["error"])

	status, _ = request(t, app, http.MethodPost, "/expense", access, expense)
	require.Equal(t, http.StatusCreated, status)
}

func TestExpenseAndSummaryEndpoints(t *testing.T) {
	app := newTestApp(t)
	access, _ := signup(t, app, "alice")

	status, category := request(t, app, http.MethodPost, "/category", access, fiber.Map{"name": "General"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := category["id"]

	status, _ = request(t, app, http.MethodPost, "/category", access, fiber.Map{"name": "General"})
	require.Equal(t, http.StatusConflict, status)

	var expenseID string
	for i, amount := range []float64{500, -120, 50} {
		status, body := request(t, app, http.MethodPost, "/expense", access,
			fiber.Map{"name": "tx", "amount": amount, "category_id": categoryID})
		require.Equal(t, http.StatusCreated, status)
		if i == 0 {
			expenseID = body["id"].(string)
		}
	}

	// Zero amount is rejected at the domain boundary.
	status, _ = request(t, app, http.MethodPost, "/expense", access,
		fiber.Map{"name": "tx", "amount": 0, "category_id": categoryID})
	require.Equal(t, http.StatusBadRequest, status)

	status, summary := request(t, app, http.MethodGet, "/summary", access, nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 550, summary["total_income"])
	require.EqualValues(t, 120, summary["total_expenses"])
	require.EqualValues(t, 430, summary["total_balance"])
	require.EqualValues(t, 2, summary["income_transactions"])
	require.EqualValues(t, 1, summary["expense_transactions"])

	status, body := request(t, app, http.MethodGet, "/balance", access, nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 430, body["balance"])

	status, _ = request(t, app, http.MethodPut, "/expense/"+expenseID, access, fiber.Map{"amount": 300})
	require.Equal(t, http.StatusOK, status)
	status, body = request(t, app, http.MethodGet, "/balance", access, nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 230, body["balance"])

	status, _ = request(t, app, http.MethodDelete, "/expense/"+expenseID, access, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodGet, "/expense/"+expenseID, access, nil)
	require.Equal(t, http.StatusNotFound, status)

	// Another user sees none of it.
	other, _ := signup(t, app, "bob")
	status, otherSummary := request(t, app, http.MethodGet, "/summary", other, nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 0, otherSummary["income_transactions"])
}

func TestCategoryCascadeOverHTTP(t *testing.T) {
	app := newTestApp(t)
	access, _ := signup(t, app, "alice")

	status, category := request(t, app, http.MethodPost, "/category", access, fiber.Map{"name": "Doomed"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := category["id"].(string)

	status, expense := request(t, app, http.MethodPost, "/expense", access,
		fiber.Map{"name": "tx", "amount": 250, "category_id": categoryID})
	require.Equal(t, http.StatusCreated, status)
	expenseID := expense["id"].(string)

	status, _ = request(t, app, http.MethodDelete, "/category/"+categoryID, access, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = request(t, app, http.MethodGet, "/expense/"+expenseID, access, nil)
	require.Equal(t, http.StatusNotFound, status)
	status, body := request(t, app, http.MethodGet, "/balance", access, nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 0, body["balance"])
}
