package application

import "errors"

// Expected outcomes are modeled as sentinel errors, not panics or generic
// failures. Anything outside this set is an internal error and propagates to
// the HTTP layer as a plain 500 without reinterpretation.
var (
	// ErrEmailTaken and ErrUsernameTaken map to 409.
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials deliberately covers both "no such email" and
	// "wrong password" so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMovieNotFound means no such movie; ErrNotOwner means the movie
	// exists but belongs to someone else. The HTTP layer decides how much of
	// that distinction to disclose per endpoint.
	ErrMovieNotFound = errors.New("movie not found")
	ErrNotOwner      = errors.New("movie belongs to another user")

	// ErrBlankKeyword maps to 400.
	ErrBlankKeyword = errors.New("search keyword cannot be empty")
)
