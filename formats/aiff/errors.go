// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotSeekable indicates an output that cannot seek; AIFF sizes are
	// patched into the header on Close.
	ErrNotSeekable = errors.New("AIFF output must be seekable")

	// ErrUnsupportedBitDepth indicates a bit depth other than 24
	ErrUnsupportedBitDepth = errors.New("only 24-bit PCM AIFF is supported")

	// ErrInvalidFormat indicates a missing channel count or sample rate
	ErrInvalidFormat = errors.New("invalid AIFF format")

	// ErrClosed indicates use of a sink after Close
	ErrClosed = errors.New("AIFF sink closed")
)
