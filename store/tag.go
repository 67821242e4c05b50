package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-manager-go-be/models"
)

// CreateTag inserts a tag under an existing category. The name must be unique
// within that category.
func (s *Store) CreateTag(categoryID uuid.UUID, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	tag := models.Tag{Name: name, CategoryID: categoryID}
	err := s.transact(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			return err
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTag returns one tag.
func (s *Store) GetTag(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &tag, nil
}

// ListTagsForCategory returns a category's tags, or ErrNotFound if the
// category itself is absent.
func (s *Store) ListTagsForCategory(categoryID uuid.UUID) ([]models.Tag, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		return nil, wrapErr(err)
	}
	var tags []models.Tag
	if err := s.db.Where("category_id = ?", categoryID).Order("name").Find(&tags).Error; err != nil {
		return nil, wrapErr(err)
	}
	return tags, nil
}

// DeleteTag removes a tag and its expense links.
func (s *Store) DeleteTag(id uuid.UUID) error {
	return s.transact(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.ExpenseTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// LinkTag attaches a tag to an expense. Both must exist and share the same
// category. Linking twice is a no-op.
func (s *Store) LinkTag(expenseID, tagID uuid.UUID) error {
	return s.transact(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.First(&expense, "id = ?", expenseID).Error; err != nil {
			return err
		}
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", tagID).Error; err != nil {
			return err
		}
		if tag.CategoryID != expense.CategoryID {
			return ErrValidation
		}

		var existing models.ExpenseTag
		err := tx.Where("expense_id = ? AND tag_id = ?", expenseID, tagID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.ExpenseTag{ExpenseID: expenseID, TagID: tagID}).Error
	})
}

// UnlinkTag detaches a tag from an expense.
func (s *Store) UnlinkTag(expenseID, tagID uuid.UUID) error {
	return s.transact(func(tx *gorm.DB) error {
		result := tx.Where("expense_id = ? AND tag_id = ?", expenseID, tagID).Delete(&models.ExpenseTag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
