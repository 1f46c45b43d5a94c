package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ErrUnauthorized covers missing, malformed, and expired sessions as well
	// as bad credentials. Callers must not be able to tell these apart.
	ErrUnauthorized ErrCode = "UNAUTHORIZED"

	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrConflict   ErrCode = "CONFLICT"
	ErrInternal   ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the default human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrUnauthorized:
		return "Unauthorized"
	case ErrValidation:
		return "Validation failed"
	case ErrNotFound:
		return "Resource not found"
	case ErrConflict:
		return "Resource already exists"
	case ErrInternal:
		return "Internal server error"
	default:
		return "An unexpected error occurred"
	}
}
