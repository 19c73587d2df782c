// Package session ties working-directory management to the typed SYNSPEC
// record codecs.
//
// A Session resolves a working directory on Init, stages configured input
// files into it, exposes read/write helpers for every exchange file format,
// and on Close copies the configured output files to the output directory
// before releasing the working directory.
package session
