package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents an account holder. Balance is a cached aggregate: it always
// equals the sum of the user's expense amounts after a committed mutation.
type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Category groups expenses and tags. Names are globally unique.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Expenses  []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
	Tags      []Tag     `gorm:"foreignKey:CategoryID" json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Tag belongs to exactly one category. The name is unique within its category,
// not globally.
type Tag struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex:idx_tag_category_name" json:"name"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_category_name" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Expense is a single signed transaction: positive amounts are income,
// negative amounts are spending. Zero is rejected before it reaches storage.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Tags        []Tag           `gorm:"many2many:expense_tags" json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ExpenseTag is the join row between expenses and tags. The pair is the
// identity; there is no surrogate key.
type ExpenseTag struct {
	ExpenseID uuid.UUID `gorm:"type:uuid;primaryKey" json:"expense_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}

// RevokedToken is a logged-out JWT, kept until its natural expiry so the
// blocklist survives restarts.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}
