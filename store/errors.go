package store

import "errors"

var (
	// ErrNotFound means a referenced id has no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName means a unique-name constraint was violated.
	ErrDuplicateName = errors.New("name already exists")
	// ErrValidation means caller-supplied data broke a domain rule.
	ErrValidation = errors.New("validation failed")
	// ErrStorage means the database failed mid-operation; the transaction
	// was rolled back and no partial state was committed.
	ErrStorage = errors.New("storage failure")
)
