// SPDX-License-Identifier: EPL-2.0

package pcm

import "github.com/ik5/dsdplay/utils"

// Justify selects where the 24 significant bits sit inside an int32.
type Justify int

const (
	// RightJustified keeps the sample in bits 23..0, sign extended.
	RightJustified Justify = iota
	// LeftJustified moves the sample to bits 31..8. Used when a resampler
	// follows and expects full-scale words.
	LeftJustified
)

func (j Justify) String() string {
	if j == LeftJustified {
		return "left"
	}
	return "right"
}

// Apply places the right-justified 24-bit value v.
func (j Justify) Apply(v int32) int32 {
	if j == LeftJustified {
		return v << 8
	}
	return v
}

// Restore brings a left-justified word back to 24 bits, clipping whatever
// processing pushed outside the range.
func Restore(v int32) int32 {
	return utils.Clip24(v >> 8)
}

// Pack24 writes each right-justified sample as three little-endian bytes.
// dst must hold 3*len(samples) bytes. It returns the bytes written.
func Pack24(dst []byte, samples []int32) int {
	for i, v := range samples {
		dst[3*i] = byte(v)
		dst[3*i+1] = byte(v >> 8)
		dst[3*i+2] = byte(v >> 16)
	}
	return 3 * len(samples)
}
