package inspire

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind string

const (
	// KindEmptyResult means a provider answered with no matches.
	KindEmptyResult Kind = "empty_result"
	// KindProvider covers transport failures, bad statuses and malformed bodies.
	KindProvider Kind = "provider"
	// KindCombinedFilter means client-side post-filtering left nothing.
	KindCombinedFilter Kind = "combined_filter"
	// KindRetryExhausted means a bounded search gave up.
	KindRetryExhausted Kind = "retry_exhausted"
	// KindUnknownCategory is returned for unroutable tags.
	KindUnknownCategory Kind = "unknown_category"
	// KindInvalidFilter is returned for malformed facet values.
	KindInvalidFilter Kind = "invalid_filter"
)

// GenericMessage is shown when an error carries no user-facing text.
const GenericMessage = "Something went wrong. Please try again."

// Error is a classified failure carrying a user-facing message.
type Error struct {
	Op      string
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Recoverable reports whether the next strategy in a chain may be tried.
// Unclassified errors count as provider failures.
func Recoverable(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Kind == KindEmptyResult || e.Kind == KindProvider
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return GenericMessage
}

func emptyResult(op, msg string) error {
	return &Error{Op: op, Kind: KindEmptyResult, Message: msg}
}

func providerError(op, msg string, err error) error {
	return &Error{Op: op, Kind: KindProvider, Message: msg, Err: err}
}
