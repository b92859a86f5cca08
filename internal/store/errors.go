package store

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrLoanNotFound is returned when no loan exists for a given user and book.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanExists is returned when a loan already exists for a given user and book.
	ErrLoanExists = errors.New("loan already exists")
)
