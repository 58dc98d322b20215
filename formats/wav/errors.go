// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("only 24-bit PCM supported")
	ErrInvalidFormat       = errors.New("invalid WAV format")
	ErrClosed              = errors.New("WAV sink closed")
)
