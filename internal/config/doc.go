// Package config loads, validates, and normalizes isynspec's TOML
// configuration.
//
// Configuration covers the working-directory strategy, the session file
// staging lists, the line store database location, and logging. Loading
// applies defaults first, then the file, then normalization (path
// expansion) and validation, so a successfully loaded Config is always
// usable as-is.
package config
