// Package fortio implements the low-level pieces of the Fortran text codec:
// a whitespace/comma token reader, a parser and formatter for the three
// Fortran spellings of floating-point literals, and fixed-column field
// extraction for formats where adjacent fields may abut without separators.
//
// Everything here is a pure function or an immutable-after-construction
// value; the package never touches the filesystem. End of input is reported
// through ok booleans and Reader.More, never through errors, so callers can
// tell a finished stream apart from a malformed one.
package fortio
