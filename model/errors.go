package model

import "fmt"

// Validation error codes.
const (
	CodeMissingRequiredSection  = "missing_required_section"
	CodeUnhandledMessageVariant = "unhandled_message_variant"
	CodeUnknownMessageVariant   = "unknown_message_variant"
	CodePayloadMismatch         = "payload_mismatch"
	CodeDuplicateName           = "duplicate_name"
	CodeNonPositiveTickInterval = "non_positive_tick_interval"
)

// ValidationError describes a structurally valid but semantically
// inconsistent definition. Element names the offending entity.
type ValidationError struct {
	Code    string
	Element string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("validation: %s (%s): %s", e.Code, e.Element, e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Code, e.Message)
}

func validationErrorf(code, element, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Element: element,
		Message: fmt.Sprintf(format, args...),
	}
}
