package sane

import (
	"errors"
	"fmt"
)

// Kind classifies the errors this package can return, independent of the
// message text, so callers can switch on failure category (spec §7).
type Kind int

const (
	// KindIO covers a failing read/write on the underlying transport.
	KindIO Kind = iota
	// KindTruncatedStream means EOF or a short read inside a framed unit.
	KindTruncatedStream
	// KindProtocolStatus means the server returned a non-zero status word
	// where zero was required.
	KindProtocolStatus
	// KindProtocolOverflow means a record length exceeded the implementation
	// maximum contiguous buffer size.
	KindProtocolOverflow
	// KindInvalidArgument means a caller-supplied value violates a precondition.
	KindInvalidArgument
	// KindIllegalState means a session operation was invoked in the wrong state.
	KindIllegalState
	// KindIncompleteImage means the image builder could not close: frames
	// missing or inconsistent.
	KindIncompleteImage
	// KindUnsupportedImageLayout means the frame combination handed to the
	// raster materializer isn't one of the supported layouts.
	KindUnsupportedImageLayout
	// KindAuthRequired means OPEN or START returned a non-empty resource
	// string; authentication isn't implemented here.
	KindAuthRequired
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindTruncatedStream:
		return "truncated_stream"
	case KindProtocolStatus:
		return "protocol_status"
	case KindProtocolOverflow:
		return "protocol_overflow"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindIllegalState:
		return "illegal_state"
	case KindIncompleteImage:
		return "incomplete_image"
	case KindUnsupportedImageLayout:
		return "unsupported_image_layout"
	case KindAuthRequired:
		return "auth_required"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this package. Code is only
// meaningful when Kind == KindProtocolStatus, carrying the server's status
// word.
type Error struct {
	Kind Kind
	Code int32
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindProtocolStatus {
		return fmt.Sprintf("sane: %s: status=%d: %s", e.Kind, e.Code, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("sane: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("sane: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapErr(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func protocolStatusErr(code int32) *Error {
	return &Error{Kind: KindProtocolStatus, Code: code, Msg: "non-zero status from server"}
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}
