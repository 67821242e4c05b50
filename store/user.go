package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expense-manager-go-be/models"
)

// RegisterUser creates an account with a bcrypt-hashed password.
func (s *Store) RegisterUser(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, wrapErr(err)
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	err = s.transact(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks credentials. Unknown username and wrong password
// both come back as ErrNotFound so the boundary cannot leak which one it was.
func (s *Store) AuthenticateUser(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetUser returns one user.
func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// RecomputeBalance is the reconciliation fallback: it resets the cached
// balance to the sum of the user's current expenses and returns the result.
// After any committed sequence of expense mutations this is a no-op.
func (s *Store) RecomputeBalance(userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.transact(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		row := tx.Model(&models.Expense{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(amount), 0)").
			Row()
		if err := row.Scan(&total); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("balance", total).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
