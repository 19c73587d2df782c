// Package synspec defines the typed records exchanged with the SYNSPEC
// spectral-synthesis program and the codecs that translate them to and from
// the program's Fortran text formats.
//
// Records are plain immutable values: decoding constructs a new record and
// encoding is a pure projection to text. Neither direction opens, locates,
// or closes files; callers hand in io.Reader/io.Writer and keep ownership
// of the underlying storage. Decode and encode failures wrap the sentinel
// errors in package fortio together with the offending token or field name.
package synspec
