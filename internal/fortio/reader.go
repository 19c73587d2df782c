package fortio

import (
	"fmt"
	"strconv"
)

// Reader yields whitespace- and comma-delimited tokens from a text buffer,
// left to right. Runs of separators collapse, so no token is ever empty.
// A Reader is bound to one buffer; construct a fresh one per input.
type Reader struct {
	text string
	pos  int
}

// NewReader returns a Reader positioned at the first token of text.
func NewReader(text string) *Reader {
	return &Reader{text: text}
}

// Next consumes and returns the next token. The boolean is false once the
// buffer is exhausted; that is the normal end condition, not an error.
func (r *Reader) Next() (string, bool) {
	r.skipSeparators()
	if r.pos >= len(r.text) {
		return "", false
	}
	start := r.pos
	for r.pos < len(r.text) && !isSeparator(r.text[r.pos]) {
		r.pos++
	}
	return r.text[start:r.pos], true
}

// More reports whether another token remains, without consuming it.
func (r *Reader) More() bool {
	r.skipSeparators()
	return r.pos < len(r.text)
}

// Float consumes one token and parses it as a Fortran float. The field name
// appears in the error when the token is missing or malformed.
func (r *Reader) Float(field string) (float64, error) {
	tok, ok := r.Next()
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrUnexpectedEnd, field)
	}
	v, err := ParseFloat(tok)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// Int consumes one token and parses it as a decimal integer.
func (r *Reader) Int(field string) (int, error) {
	tok, ok := r.Next()
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrUnexpectedEnd, field)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q", field, ErrMalformedNumber, tok)
	}
	return v, nil
}

func (r *Reader) skipSeparators() {
	for r.pos < len(r.text) && isSeparator(r.text[r.pos]) {
		r.pos++
	}
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',':
		return true
	}
	return false
}
