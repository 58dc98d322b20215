// SPDX-License-Identifier: EPL-2.0

// Package aiff writes 24-bit PCM AIFF files.
//
// This package uses github.com/go-audio/aiff to encode AIFF files. The
// encoder patches the FORM and SSND sizes on Close, so the output must be
// seekable; use the wav or raw formats to write to a pipe.
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//
// The encoder handles all format differences automatically.
package aiff
