package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"expense-manager-go-be/database"
	"expense-manager-go-be/models"
)

// newTestStore opens an in-memory sqlite database with the production schema.
// A single pooled connection keeps sqlite from returning busy errors under
// the concurrency tests.
func newTestStore(t *testing.T) *Store {
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
	return New(db)
}

// randomID stands in for an id with no matching row.
func randomID() uuid.UUID { return uuid.New() }

// seedUser registers a throwaway account.
func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user, err := s.RegisterUser(username, "hunter2")
	require.NoError(t, err)
	return user
}

// seedCategory creates a category.
func seedCategory(t *testing.T, s *Store, name string) *models.Category {
	t.Helper()
	category, err := s.CreateCategory(name)
	require.NoError(t, err)
	return category
}
