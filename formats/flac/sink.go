// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/dsdplay/audio"
)

const (
	// BlockSize is the number of frames per FLAC frame.
	BlockSize = 4096

	// MaxSampleRate is the highest rate the stream info block can hold.
	MaxSampleRate = 1<<20 - 1
)

// Encoder creates FLAC sinks. Its zero value is ready to use.
type Encoder struct{}

func (Encoder) Name() string { return "flac" }

func (Encoder) NewSink(w io.Writer, f audio.Format) (audio.Sink, error) {
	return NewSink(w, f)
}

// writeSeeker and writer hide io.Closer from the encoder, which would
// otherwise close the caller's file. writeSeeker keeps Seek so the stream
// info block is rewritten with the final sample count and MD5 on Close.
type writeSeeker struct{ io.WriteSeeker }

type writer struct{ io.Writer }

// Sink writes 24-bit FLAC using verbatim subframes in blocks of BlockSize
// frames.
type Sink struct {
	format audio.Format
	enc    *flac.Encoder

	// pending holds deinterleaved samples of the block being filled.
	pending [][]int32
	fill    int

	// headerRate is the rate written to frame headers, zero when only the
	// stream info block can express it.
	headerRate uint32

	frames uint64
	closed bool
}

// NewSink writes the FLAC signature and stream info to w.
func NewSink(w io.Writer, f audio.Format) (*Sink, error) {
	if f.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, f.BitDepth)
	}
	if f.Channels < 1 || f.Channels > 8 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, f.Channels)
	}
	if f.SampleRate <= 0 || f.SampleRate > MaxSampleRate {
		return nil, fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, f.SampleRate)
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  BlockSize,
		BlockSizeMax:  BlockSize,
		SampleRate:    uint32(f.SampleRate),
		NChannels:     uint8(f.Channels),
		BitsPerSample: uint8(f.BitDepth),
	}

	var out io.Writer = writer{w}
	if ws, ok := w.(io.WriteSeeker); ok {
		if _, err := ws.Seek(0, io.SeekCurrent); err == nil {
			out = writeSeeker{ws}
		}
	}

	enc, err := flac.NewEncoder(out, info)
	if err != nil {
		return nil, fmt.Errorf("creating FLAC encoder: %w", err)
	}
	// Verbatim subframes are replaced by the cheapest fixed predictor.
	enc.EnablePredictionAnalysis(true)

	pending := make([][]int32, f.Channels)
	for i := range pending {
		pending[i] = make([]int32, BlockSize)
	}

	return &Sink{
		format:     f,
		enc:        enc,
		pending:    pending,
		headerRate: headerRate(f.SampleRate),
	}, nil
}

// headerRate returns rate if a frame header can carry it and zero, meaning
// "see stream info", otherwise. DSD128 demodulates to 705600 Hz, which only
// fits the stream info block.
func headerRate(rate int) uint32 {
	switch {
	case rate <= 65535:
		return uint32(rate)
	case rate <= 655350 && rate%10 == 0:
		return uint32(rate)
	default:
		return 0
	}
}

// Frames returns the number of frames accepted so far.
func (s *Sink) Frames() uint64 { return s.frames }

func (s *Sink) WriteBlock(samples []int32) error {
	if s.closed {
		return ErrClosed
	}
	channels := s.format.Channels
	if len(samples)%channels != 0 {
		return audio.ErrInvalidDstSize
	}

	for i := 0; i < len(samples); i += channels {
		for ch := range channels {
			s.pending[ch][s.fill] = samples[i+ch]
		}
		s.fill++
		s.frames++

		if s.fill == BlockSize {
			if err := s.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// flush encodes the pending samples as one frame.
func (s *Sink) flush() error {
	if s.fill == 0 {
		return nil
	}

	subframes := make([]*frame.Subframe, len(s.pending))
	for ch, buf := range s.pending {
		subframes[ch] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   buf[:s.fill],
			NSamples:  s.fill,
		}
	}

	f := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(s.fill),
			SampleRate:        s.headerRate,
			Channels:          frame.Channels(s.format.Channels - 1),
			BitsPerSample:     uint8(s.format.BitDepth),
		},
		Subframes: subframes,
	}

	s.fill = 0
	if err := s.enc.WriteFrame(f); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	return nil
}

// Close encodes the last partial block and finalizes the stream. The
// underlying writer is left open.
func (s *Sink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	if err := s.flush(); err != nil {
		return err
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("finalizing FLAC: %w", err)
	}
	return nil
}
