package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies catalog failures for user-facing reporting.
type Kind int

// Failure categories.
const (
	KindNoCredential Kind = iota
	KindAuth
	KindRequest
	KindNetwork
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNoCredential:
		return "no_credential"
	case KindAuth:
		return "auth"
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a categorized catalog failure. All catalog errors are recoverable
// by user action.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure category, or KindRequest for foreign errors.
func KindOf(err error) Kind {
	var catErr *Error
	if errors.As(err, &catErr) {
		return catErr.Kind
	}
	return KindRequest
}

// IsKind reports whether err is a catalog error of the given category.
func IsKind(err error, kind Kind) bool {
	var catErr *Error
	return errors.As(err, &catErr) && catErr.Kind == kind
}
