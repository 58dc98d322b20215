// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/pcm"
)

// Encoder creates raw sinks. Word32 selects 4-byte words over tightly
// packed 3-byte samples.
type Encoder struct {
	Word32 bool
}

func (e Encoder) Name() string { return "raw" }

func (e Encoder) NewSink(w io.Writer, f audio.Format) (audio.Sink, error) {
	return NewSink(w, f, e.Word32)
}

// Sink writes headerless interleaved little-endian PCM. In word32 mode each
// sample is left-justified in a signed 32-bit word, matching what tools
// such as sox expect for "-e signed -b 32".
type Sink struct {
	w        io.Writer
	channels int
	word32   bool
	scratch  []byte
	frames   uint64
	closed   bool
}

func NewSink(w io.Writer, f audio.Format, word32 bool) (*Sink, error) {
	if f.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, f.BitDepth)
	}
	if f.Channels <= 0 {
		return nil, audio.ErrNoChannels
	}
	return &Sink{w: w, channels: f.Channels, word32: word32}, nil
}

// Frames returns the number of frames written so far.
func (s *Sink) Frames() uint64 { return s.frames }

func (s *Sink) WriteBlock(samples []int32) error {
	if s.closed {
		return ErrClosed
	}
	if len(samples)%s.channels != 0 {
		return audio.ErrInvalidDstSize
	}
	if len(samples) == 0 {
		return nil
	}

	width := 3
	if s.word32 {
		width = 4
	}
	size := width * len(samples)
	if cap(s.scratch) < size {
		s.scratch = make([]byte, size)
	}
	buf := s.scratch[:size]

	if s.word32 {
		for i, v := range samples {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(pcm.LeftJustified.Apply(v)))
		}
	} else {
		pcm.Pack24(buf, samples)
	}

	if _, err := s.w.Write(buf); err != nil {
		return fmt.Errorf("writing block: %w", err)
	}
	s.frames += uint64(len(samples) / s.channels)
	return nil
}

// Close marks the sink closed. Raw output has nothing to finalize.
func (s *Sink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}
