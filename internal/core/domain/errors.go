package domain

import "errors"

var (
	// ErrEmailTaken means the normalized email already has an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers bad signature, wrong algorithm, and expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrUserNotFound = errors.New("user not found")
	ErrEntryNotFound = errors.New("entry not found")
	// ErrForbidden means the caller is authenticated but not the owner.
	ErrForbidden = errors.New("you do not own this entry")
)
