// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// ModulateSine returns n bytes of MSB-first 1-bit audio carrying a sine of
// the given frequency and amplitude, produced by a first order delta-sigma
// modulator running at rate.
func ModulateSine(n int, freq, rate, amplitude float64) []byte {
	out := make([]byte, n)
	var integ float64
	y := -1.0

	for i := range n {
		var b byte
		for bit := range 8 {
			t := float64(i*8+bit) / rate
			x := amplitude * math.Sin(2*math.Pi*freq*t)
			integ += x - y
			if integ >= 0 {
				y = 1
				b |= 0x80 >> bit
			} else {
				y = -1
			}
		}
		out[i] = b
	}

	return out
}
