// SPDX-License-Identifier: MPL-2.0

// Package coreutils provides the textkit text utilities: cat, head, uniq, wc,
// find and echo.
//
// Every utility implements the Command interface and lives in a Registry. The
// same Registry serves the cobra CLI (one subcommand per utility) and the
// embedded POSIX shell runner (RunScript), where registered names intercept
// command execution before any host binary is considered.
//
// # Streaming I/O
//
// Inputs are opened through textio.Open one at a time, drained, and closed
// before the next input is opened (ProcessInputs). Memory use is bounded by the
// longest line, never by file size. Output is buffered per invocation and
// flushed after every input.
//
// # Error Format
//
// Per-input open failures are written to stderr and skipped:
//
//	cat: missing.txt: no such file or directory
//
// Usage errors are returned as *UsageError and map to exit status 2. Any other
// returned error maps to exit status 1 (see ExitCodeFor).
//
// # POSIX Combined Short Flags
//
// Registry.Run parses arguments with spf13/pflag, so combined short flags
// ("-ns"), long flags ("--number") and interspersed operands all work the same
// way from the shell runner and from the CLI.
package coreutils
