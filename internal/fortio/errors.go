package fortio

import "errors"

// Sentinel errors shared by the record codecs. Codecs wrap these with the
// offending token or field name so callers can locate the fault.
var (
	ErrMalformedNumber = errors.New("malformed numeric literal")
	ErrUnexpectedEnd   = errors.New("unexpected end of record")
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrSentinel        = errors.New("sentinel mismatch")
	ErrInvariant       = errors.New("invariant violation")
)
