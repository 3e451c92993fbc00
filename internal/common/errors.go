// Package common defines shared constants and sentinel errors used across
// tcgexchange client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrEmptyCredential = errors.New("email and password are required")
	ErrEmptyFriendID   = errors.New("friend id is required")

	// Messaging errors.
	ErrEmptyMessage = errors.New("message must not be empty")

	// Storage errors.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")

	// Collection errors.
	ErrInvalidCardID = errors.New("invalid card id, expected SET-NUMBER")
	ErrInvalidCount  = errors.New("card count must not be negative")
)
