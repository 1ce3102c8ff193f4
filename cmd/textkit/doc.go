// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the textkit command line.
//
// Every utility in the coreutils registry becomes a cobra subcommand whose
// flags are bound by the utility itself. The remaining subcommands run shell
// scripts (sh), render manual pages (manual) and manage configuration
// (config).
package cmd
