// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/utils"
)

// Demodulator converts 1-bit audio to 24-bit PCM at one eighth of the input
// rate. The filter history of each channel is kept between calls.
type Demodulator struct {
	ctx     []*demodContext
	scratch []float32
}

// NewDemodulator prepares a demodulator for blocks of up to capacity bytes
// per channel.
func NewDemodulator(channels, capacity int) *Demodulator {
	return &Demodulator{
		ctx:     make([]*demodContext, channels),
		scratch: make([]float32, channels*capacity),
	}
}

// Channels returns the channel count the demodulator was built for.
func (d *Demodulator) Channels() int { return len(d.ctx) }

// Convert filters the valid bytes of buf and writes one interleaved frame
// per input byte into out. Each sample is scaled to 24 bits, rounded half
// away from zero, clipped and placed according to j. It returns the number
// of frames written.
func (d *Demodulator) Convert(buf *dsd.Buffer, out []int32, j Justify) (int, error) {
	channels := buf.Channels
	n := buf.BytesPerChannel

	if channels != len(d.ctx) {
		return 0, fmt.Errorf("%w: %d, want %d", ErrChannelMismatch, channels, len(d.ctx))
	}
	samples := n * channels
	if samples > len(d.scratch) {
		return 0, fmt.Errorf("%w: %d bytes per channel", ErrBlockTooLarge, n)
	}
	if len(out) < samples {
		return 0, fmt.Errorf("%w: need %d samples, have %d", ErrShortOutput, samples, len(out))
	}

	for ch := range channels {
		if d.ctx[ch] == nil {
			d.ctx[ch] = newDemodContext()
		}
		d.ctx[ch].translate(n, buf.Data, ch*buf.ChannelStep, buf.SampleStep, buf.LSBFirst,
			d.scratch, ch, channels)
	}

	for i, x := range d.scratch[:samples] {
		out[i] = j.Apply(utils.Float32ToInt24(x))
	}

	return n, nil
}

// Reset clears the filter history of every channel.
func (d *Demodulator) Reset() {
	for _, c := range d.ctx {
		if c != nil {
			c.reset()
		}
	}
}
