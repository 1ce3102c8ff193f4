// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/textkit/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/textkit/config.cue on macOS, %APPDATA%\textkit\config.cue
// on Windows). Values can be overridden with TEXTKIT_-prefixed environment variables,
// for example TEXTKIT_HEAD_LINES=20.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
