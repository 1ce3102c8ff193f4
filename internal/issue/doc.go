// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown issue
// pages shown by textkit in verbose mode.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions. When it names a catalog Id, the CLI renders the matching Issue
// with glamour below the one-line error.
package issue
