package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store is the domain model layer. Every mutating method runs inside a single
// transaction: its writes and any balance maintenance commit or roll back
// together, so partial state is never observable.
type Store struct {
	db *gorm.DB
}

// New wraps an already-connected database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// wrapErr maps GORM errors onto the store taxonomy. Errors already in the
// taxonomy pass through untouched.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

// transact runs fn in one transaction and folds the result into the taxonomy.
func (s *Store) transact(fn func(tx *gorm.DB) error) error {
	return wrapErr(s.db.Transaction(fn))
}
