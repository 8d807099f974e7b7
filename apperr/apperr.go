package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the outcomes the HTTP layer (or any other
// caller) can act on.
type Kind int

const (
	// KindNotFound — intake, template or food does not exist.
	KindNotFound Kind = iota
	// KindValidation — the request contradicts the data (unsupported unit,
	// missing required fields, and so on).
	KindValidation
	// KindUpstream — the food catalog dependency is unreachable.
	KindUpstream
	// KindConfiguration — a deployment defect (e.g. no calculator registered for
	// a unit). Not a user error; should abort the request loudly.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream_unavailable"
	case KindConfiguration:
		return "configuration"
	}
	return "unknown"
}

// Error is the typed failure surfaced by the service layer.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
