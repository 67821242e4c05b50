package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"expense-manager-go-be/models"
)

// CreateCategory inserts a category. Names are globally unique.
func (s *Store) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	category := models.Category{Name: name}
	err := s.transact(func(tx *gorm.DB) error {
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategory returns one category with its expenses and tags.
func (s *Store) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Expenses").Preload("Tags").First(&category, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

// ListCategories returns all categories with their expenses and tags.
func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Expenses").Preload("Tags").Order("name").Find(&categories).Error; err != nil {
		return nil, wrapErr(err)
	}
	return categories, nil
}

// DeleteCategory removes a category and cascades to its expenses, tags, and
// tag links. Each affected user's balance loses that user's expense total in
// the category, all inside the same transaction.
func (s *Store) DeleteCategory(id uuid.UUID) error {
	return s.transact(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return err
		}

		var totals []struct {
			UserID uuid.UUID
			Total  decimal.Decimal
		}
		err := tx.Model(&models.Expense{}).
			Select("user_id, COALESCE(SUM(amount), 0) AS total").
			Where("category_id = ?", id).
			Group("user_id").
			Scan(&totals).Error
		if err != nil {
			return err
		}
		for _, t := range totals {
			err := tx.Model(&models.User{}).
				Where("id = ?", t.UserID).
				Update("balance", gorm.Expr("balance - ?", t.Total)).Error
			if err != nil {
				return err
			}
		}

		expenseIDs := tx.Model(&models.Expense{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("expense_id IN (?)", expenseIDs).Delete(&models.ExpenseTag{}).Error; err != nil {
			return err
		}
		tagIDs := tx.Model(&models.Tag{}).Select("id").Where("category_id = ?", id)
		if err := tx.Where("tag_id IN (?)", tagIDs).Delete(&models.ExpenseTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
