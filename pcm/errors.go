// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrShortOutput     = errors.New("output buffer too small")
	ErrChannelMismatch = errors.New("block channel count does not match")
	ErrBlockTooLarge   = errors.New("block exceeds demodulator capacity")
)
