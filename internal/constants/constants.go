package constants

import "time"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Password policy (letters + digit + special, 5-11 characters)
const (
	MinPasswordLength = 5
	MaxPasswordLength = 11
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// Email verification
const (
	AuthCodeLength = 6
	AuthCodeTTL    = 5 * time.Minute
)

// AccessTokenTTL is the lifetime of issued JWTs.
const AccessTokenTTL = 24 * time.Hour
