package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrEmptyMessage      = errors.New("message is empty")
	ErrMissingUserID     = errors.New("user_id is required")
	ErrInvalidSnapshot   = errors.New("invalid resume snapshot")
	ErrInvalidChangeType = errors.New("invalid change type")
	ErrLLMNotConfigured  = errors.New("LLM client is not configured")

	// Not found errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrResumeNotFound  = errors.New("resume not found")
	ErrChangeNotFound  = errors.New("change not found")
	ErrSessionNotFound = errors.New("session not found")

	// Conflict errors
	ErrProfileExists = errors.New("profile already exists")

	// Rejected operations
	ErrRevertRejected = errors.New("revert rejected")
)
