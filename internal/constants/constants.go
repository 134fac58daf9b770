package constants

import "time"

const (
	// ContextKeyUser is the gin context key holding the authenticated user.
	ContextKeyUser = "current_user"
	// ContextKeyTask is the gin context key holding the task loaded by the
	// task access middleware.
	ContextKeyTask = "task"

	MinPasswordLength = 6
	MinUsernameLength = 3

	// TokenLifetime is how long an issued access token stays valid.
	TokenLifetime = 7 * 24 * time.Hour
)
