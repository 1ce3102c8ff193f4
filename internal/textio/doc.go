// SPDX-License-Identifier: MPL-2.0

// Package textio is the streaming core shared by the text utilities: it opens
// an input designator (standard input or a path) as a buffered Source that
// yields raw lines with their terminating newline preserved, and opens the
// optional append-mode output destination.
//
// Inputs are never read whole. A Source buffers reads internally so that
// successive ReadLine calls cost one system call per buffer refill, and lines
// longer than the buffer are accumulated into the caller's slice.
package textio
