package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services match
// on these with errors.Is and translate them into their own taxonomy.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)
