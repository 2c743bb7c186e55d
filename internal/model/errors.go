package model

type ErrorType string

const (
	ErrInvalidJSON     ErrorType = "INVALID_JSON"
	ErrMigrationFailed ErrorType = "MIGRATION_FAILED"
	ErrIO              ErrorType = "IO_ERROR"
	ErrParse           ErrorType = "PARSE_ERROR"
)

// Error is the categorized failure value returned across the engine
// boundary. Row-level malformation never becomes one of these; malformed
// rows are skipped where they are found.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Details != "" {
		return string(e.Type) + ": " + e.Message + " (" + e.Details + ")"
	}
	return string(e.Type) + ": " + e.Message
}

func NewError(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

func NewDetailedError(t ErrorType, message string, details string) *Error {
	return &Error{Type: t, Message: message, Details: details}
}
