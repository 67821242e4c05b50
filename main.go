package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"

	"expense-manager-go-be/config"
	"expense-manager-go-be/database"
	"expense-manager-go-be/handlers"
	"expense-manager-go-be/store"
)

func main() {
	// Amounts go out as JSON numbers, matching what the frontend expects.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	h := handlers.New(store.New(db), cfg)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	registerRoutes(app, h)

	log.Fatal(app.Listen(":" + cfg.Port))
}

func registerRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	api.Post("/logout", h.Logout)

	// Categories (reads are public, writes need a token)
	api.Get("/category", h.ListCategories)
	api.Post("/category", h.RequireAuth, h.CreateCategory)
	api.Get("/category/:id", h.GetCategory)
	api.Delete("/category/:id", h.RequireAuth, h.DeleteCategory)
	api.Get("/category/:id/tag", h.ListCategoryTags)
	api.Post("/category/:id/tag", h.RequireAuth, h.CreateCategoryTag)

	// Tags
	api.Get("/tag/:id", h.RequireAuth, h.GetTag)
	api.Delete("/tag/:id", h.RequireAuth, h.DeleteTag)

	// Expenses
	api.Get("/expense", h.RequireAuth, h.ListExpenses)
	api.Post("/expense", h.RequireFreshAuth, h.CreateExpense)
	api.Get("/expense/:id", h.RequireAuth, h.GetExpense)
	api.Put("/expense/:id", h.RequireAuth, h.UpdateExpense)
	api.Delete("/expense/:id", h.RequireAuth, h.DeleteExpense)
	api.Post("/expense/:id/tag/:tagId", h.RequireAuth, h.LinkExpenseTag)
	api.Delete("/expense/:id/tag/:tagId", h.RequireAuth, h.UnlinkExpenseTag)

	// Summary
	api.Get("/summary", h.RequireAuth, h.GetSummary)
	api.Get("/balance", h.RequireAuth, h.GetBalance)
}
