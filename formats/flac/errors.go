// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("only 24-bit PCM supported")
	ErrUnsupportedRate     = errors.New("sample rate not representable in FLAC")
	ErrUnsupportedChannels = errors.New("FLAC supports 1 to 8 channels")
	ErrClosed              = errors.New("FLAC sink closed")
)
