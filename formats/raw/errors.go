// SPDX-License-Identifier: EPL-2.0

package raw

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("only 24-bit PCM supported")
	ErrClosed              = errors.New("raw sink closed")
)
