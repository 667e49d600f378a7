package turn

import (
	"errors"
	"fmt"
)

// Kind classifies a turn failure so callers can branch on category
// without matching error strings.
type Kind int

const (
	// KindInternal is any fault that doesn't fit another category.
	KindInternal Kind = iota

	// KindValidation is a caller-fixable request problem.
	KindValidation

	// KindTranscription is a speech-to-text engine failure.
	KindTranscription

	// KindCompletion is a reply-generation engine failure.
	KindCompletion

	// KindSynthesis is a text-to-speech engine failure.
	KindSynthesis
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTranscription:
		return "transcription"
	case KindCompletion:
		return "completion"
	case KindSynthesis:
		return "synthesis"
	default:
		return "internal"
	}
}

// Error is a classified turn failure.
// Message is safe to show to callers for validation errors; everything
// else must be reduced to a generic message at the boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("turn [%s]: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("turn [%s]: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf creates a validation error with a caller-visible message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an adapter failure.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure category from an error chain.
// Unclassified errors are internal faults.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindInternal
}
