// SPDX-License-Identifier: EPL-2.0

package dsd

import "sync"

// Lookup tables indexed by 256*carriedError + inputByte. Each entry maps one
// input byte (four 2-bit groups) to a 4-bit output nibble and the error bit
// carried into the next byte.
var (
	halfrateOnce   sync.Once
	halfrateNibble [512]byte
	halfrateError  [512]byte
)

func initHalfrateTables() {
	for ierr := range 2 {
		for in := range 256 {
			idx := 256*ierr + in
			e := ierr
			var nibble byte
			for shr := 6; shr >= 0; shr -= 2 {
				nibble <<= 1
				pair := (in >> shr) & 0x03
				if (e == 1 && pair == 0x03) || (e == 0 && pair != 0x00) {
					nibble |= 1
				}
				if pair == 0x01 || pair == 0x02 {
					e = 1 - e
				}
			}
			halfrateNibble[idx] = nibble
			halfrateError[idx] = byte(e)
		}
	}
}

// halfrateLookup returns the output nibble and the new carried error for
// one MSB-first input byte.
func halfrateLookup(carried, in byte) (nibble, err byte) {
	halfrateOnce.Do(initHalfrateTables)
	idx := 256*int(carried) + int(in)
	return halfrateNibble[idx], halfrateError[idx]
}

// HalfrateFilter decimates a 1-bit stream by two with noise shaping. The
// quantization error of every channel is carried from one block to the
// next, so one filter must serve exactly one stream.
type HalfrateFilter struct {
	out    *Buffer
	qerror []byte
}

// NewHalfrateFilter prepares a filter for blocks shaped like in. The output
// block holds half of in's capacity per channel.
func NewHalfrateFilter(in *Buffer) *HalfrateFilter {
	halfrateOnce.Do(initHalfrateTables)

	return &HalfrateFilter{
		out:    NewBuffer(in.Channels, in.Layout.half(in.Channels)),
		qerror: make([]byte, in.Channels),
	}
}

// Output returns the block written by Process.
func (f *HalfrateFilter) Output() *Buffer { return f.out }

// Process converts in to MSB order if needed, decimates it into the output
// block and returns that block.
func (f *HalfrateFilter) Process(in *Buffer) *Buffer {
	in.ToMSB()

	out := f.out
	pairs := in.BytesPerChannel / 2
	out.BytesPerChannel = pairs

	for ch := range in.Channels {
		src := ch * in.ChannelStep
		dst := ch * out.ChannelStep
		qe := f.qerror[ch]

		for range pairs {
			idx := 256*int(qe) + int(in.Data[src])
			b := halfrateNibble[idx] << 4
			qe = halfrateError[idx]
			src += in.SampleStep

			idx = 256*int(qe) + int(in.Data[src])
			b |= halfrateNibble[idx]
			qe = halfrateError[idx]
			src += in.SampleStep

			out.Data[dst] = b
			dst += out.SampleStep
		}

		f.qerror[ch] = qe
	}

	return out
}
