// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const (
	Max24Bit = 1<<23 - 1
	Min24Bit = -(1 << 23)
)

// Float32ToInt24 scales x by 2^23, rounds half away from zero and clips the
// result to the signed 24-bit range.
func Float32ToInt24(x float32) int32 {
	r := math.Round(float64(x) * (1 << 23))
	if r > Max24Bit {
		return Max24Bit
	}
	if r < Min24Bit {
		return Min24Bit
	}
	return int32(r)
}

// Clip24 clamps v to the signed 24-bit range.
func Clip24(v int32) int32 {
	if v > Max24Bit {
		return Max24Bit
	}
	if v < Min24Bit {
		return Min24Bit
	}
	return v
}
