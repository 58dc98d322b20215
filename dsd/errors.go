// SPDX-License-Identifier: EPL-2.0

package dsd

import "errors"

var (
	// ErrUnknownFormat indicates the first four bytes match no registered container.
	ErrUnknownFormat = errors.New("unknown DSD container")

	// ErrShortRead indicates fewer bytes were available than a header or block required.
	ErrShortRead = errors.New("short read")

	// ErrSeekBackward indicates a seek before the current offset on a non-seekable source.
	ErrSeekBackward = errors.New("cannot seek backward on a non-seekable source")

	// ErrInvalidWhence indicates a seek mode other than io.SeekStart or io.SeekCurrent.
	ErrInvalidWhence = errors.New("invalid seek whence")

	// ErrNoChannels indicates the container declared zero channels.
	ErrNoChannels = errors.New("channel count is zero")

	// ErrNoSampleRate indicates the container declared a zero sampling frequency.
	ErrNoSampleRate = errors.New("sampling frequency is zero")

	// ErrEOFExpected is returned when block reading stopped before the end of the stream.
	ErrEOFExpected = errors.New("file read error, EOF was expected")

	// ErrClosed indicates use of a stream after Close.
	ErrClosed = errors.New("stream is closed")
)
