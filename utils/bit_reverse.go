// SPDX-License-Identifier: EPL-2.0

package utils

// bitReverseTable maps every byte to the byte with its bit order reversed.
var bitReverseTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		var r byte
		for b := range 8 {
			if i&(1<<b) != 0 {
				r |= 0x80 >> b
			}
		}
		t[i] = r
	}
	return t
}()

// BitReverse returns v with its bit order reversed (bit 0 becomes bit 7).
func BitReverse(v byte) byte {
	return bitReverseTable[v]
}

// BitReverseBytes reverses the bit order of every byte in p in place.
func BitReverseBytes(p []byte) {
	for i, v := range p {
		p[i] = bitReverseTable[v]
	}
}
