// Package main hosts the isynspec CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the exchange-file codecs, the line
// database, and working-directory staging as terminal commands. It
// centralizes configuration resolution and logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
