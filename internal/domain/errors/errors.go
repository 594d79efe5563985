package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailTaken         = errors.New("User already exists with this email")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotFound           = errors.New("Task not found")
	ErrUnauthorized       = errors.New("Token is not valid")
	ErrNoToken            = errors.New("No token, authorization denied")
	ErrInternalServer     = errors.New("Internal server error")
	ErrBadRequest         = errors.New("Invalid request data")
	ErrValidationFailed   = errors.New("Validation failed")

	ErrInvalidName      = errors.New("Name must be at least 2 characters")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrShortPassword    = errors.New("Password must be at least 8 characters")
	ErrWeakPassword     = errors.New("Password must contain at least one uppercase letter, one lowercase letter, and one number")
	ErrInvalidTitle     = errors.New("Title is required")
	ErrInvalidStatus    = errors.New("Invalid task status")
	ErrInvalidPriority  = errors.New("Invalid task priority")
	ErrWrongOldPassword = errors.New("Current password is incorrect")
	ErrSamePassword     = errors.New("New password cannot be the same as current password")

	ErrConfigFileReadFailed = errors.New("failed to read config file")
	ErrConfigParseFailed    = errors.New("failed to parse config file")
	ErrConfigInvalidFormat  = errors.New("invalid config value")
)
