// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/config"
)

// DoPPacker packs 1-bit audio into DSD-over-PCM words. Each output word
// carries a marker byte on top, the first input byte in the middle and the
// second in the low byte. The marker alternates between frames and the
// sequence continues across calls. The zero value starts with
// config.DoPMarkerLow.
type DoPPacker struct {
	high bool
}

// Marker returns the marker the next frame will carry.
func (p *DoPPacker) Marker() byte {
	if p.high {
		return config.DoPMarkerHigh
	}
	return config.DoPMarkerLow
}

// Pack converts buf to MSB order if needed and writes one word per channel
// for every pair of input bytes. An odd trailing byte is ignored. It
// returns the number of frames written to out.
func (p *DoPPacker) Pack(buf *dsd.Buffer, out []int32, j Justify) (int, error) {
	frames := buf.BytesPerChannel / 2
	if need := frames * buf.Channels; len(out) < need {
		return 0, fmt.Errorf("%w: need %d samples, have %d", ErrShortOutput, need, len(out))
	}

	buf.ToMSB()

	k := 0
	for s := range frames {
		marker := uint32(p.Marker())
		for ch := range buf.Channels {
			word := marker<<16 | uint32(buf.At(ch, 2*s))<<8 | uint32(buf.At(ch, 2*s+1))
			// Sign extend from 24 bits.
			out[k] = j.Apply(int32(word<<8) >> 8)
			k++
		}
		p.high = !p.high
	}

	return frames, nil
}
