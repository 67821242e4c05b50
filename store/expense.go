package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"expense-manager-go-be/models"
)

// ExpensePatch enumerates the fields UpdateExpense may change. Nil fields are
// left untouched. Ownership is not patchable: an expense stays with the user
// who created it.
type ExpensePatch struct {
	Name        *string
	Description *string
	Amount      *decimal.Decimal
	CategoryID  *uuid.UUID
}

// applyBalanceDelta shifts a user's cached balance by delta as a single
// in-database update, so concurrent writers serialize on the user row.
func applyBalanceDelta(tx *gorm.DB, userID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

// CreateExpense inserts an expense for the user and credits the amount to the
// user's balance in the same transaction. Positive amounts are income,
// negative amounts are spending; zero is rejected.
func (s *Store) CreateExpense(userID, categoryID uuid.UUID, name, description string, amount decimal.Decimal) (*models.Expense, error) {
	name = strings.TrimSpace(name)
	if name == "" || amount.IsZero() {
		return nil, ErrValidation
	}

	expense := models.Expense{
		Name:        name,
		Description: description,
		Amount:      amount,
		CategoryID:  categoryID,
		UserID:      userID,
	}
	err := s.transact(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		var category models.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			return err
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, userID, amount)
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetExpense returns one of the user's expenses with category and tags.
func (s *Store) GetExpense(id, userID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.Preload("Category").Preload("Tags").
		First(&expense, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &expense, nil
}

// ListExpensesForUser returns the user's expenses, newest first.
func (s *Store) ListExpensesForUser(userID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Preload("Category").Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial update to one of the user's expenses. An
// amount change moves the balance by the difference; a category change
// verifies the new category and drops tag links left over from the old one.
func (s *Store) UpdateExpense(id, userID uuid.UUID, patch ExpensePatch) (*models.Expense, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, ErrValidation
	}
	if patch.Amount != nil && patch.Amount.IsZero() {
		return nil, ErrValidation
	}

	var expense models.Expense
	err := s.transact(func(tx *gorm.DB) error {
		if err := tx.First(&expense, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}

		if patch.Name != nil {
			expense.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			expense.Description = *patch.Description
		}
		if patch.CategoryID != nil && *patch.CategoryID != expense.CategoryID {
			var category models.Category
			if err := tx.First(&category, "id = ?", *patch.CategoryID).Error; err != nil {
				return err
			}
			// Tags belong to the old category and no longer apply.
			if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
				return err
			}
			expense.CategoryID = *patch.CategoryID
		}

		var delta decimal.Decimal
		if patch.Amount != nil {
			delta = patch.Amount.Sub(expense.Amount)
			expense.Amount = *patch.Amount
		}

		if err := tx.Save(&expense).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, userID, delta)
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes one of the user's expenses and reverses its
// contribution to the balance.
func (s *Store) DeleteExpense(id, userID uuid.UUID) error {
	return s.transact(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.First(&expense, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}
		return applyBalanceDelta(tx, userID, expense.Amount.Neg())
	})
}
