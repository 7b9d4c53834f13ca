// Package cli defines the Cobra command tree for the craftfile CLI. Each
// file in this package registers one top-level command (load, lint, etc.)
// with the root command. Command implementations delegate to internal
// packages for the loading logic and only handle flag parsing, I/O
// formatting, and exit status.
package cli
