package netstring

import "errors"

// Fatal decode errors. Once one is returned the stream cannot be
// resynchronized and the connection must be dropped.
var (
	ErrMalformedLength    = errors.New("netstring: malformed length")
	ErrTerminatorMismatch = errors.New("netstring: terminator mismatch")
	ErrInvalidPayload     = errors.New("netstring: invalid payload")
	ErrPayloadTooLarge    = errors.New("netstring: payload too large")
)

// Error kinds reported by Kind.
const (
	KindMalformedLength    = "malformed_length"
	KindTerminatorMismatch = "terminator_mismatch"
	KindInvalidPayload     = "invalid_payload"
	KindPayloadTooLarge    = "payload_too_large"
	KindOther              = "other"
)

// Kind maps err to a stable label for logs and metrics.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedLength):
		return KindMalformedLength
	case errors.Is(err, ErrTerminatorMismatch):
		return KindTerminatorMismatch
	case errors.Is(err, ErrInvalidPayload):
		return KindInvalidPayload
	case errors.Is(err, ErrPayloadTooLarge):
		return KindPayloadTooLarge
	default:
		return KindOther
	}
}

// IsFatal reports whether err is a framing error rather than an I/O error.
func IsFatal(err error) bool {
	return err != nil && Kind(err) != KindOther
}
