package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"expense-manager-go-be/models"
)

// Connect opens the database and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	if !strings.Contains(dsn, "sslmode") {
		dsn += "?sslmode=require" // Fixes Supabase connection refusal
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Connected to database successfully")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database migrated successfully")

	return db, nil
}

// Migrate registers the join table and creates or updates the schema.
// Shared with the test harness, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	// The explicit join model gives expense_tags a composite primary key
	// instead of GORM's default generated table.
	if err := db.SetupJoinTable(&models.Expense{}, "Tags", &models.ExpenseTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Expense{},
		&models.RevokedToken{},
	)
}
