// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/dsdplay/audio"
)

// aiffWriter is an interface for aiff.Encoder to allow testing
type aiffWriter interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Encoder creates AIFF sinks. Its zero value is ready to use.
type Encoder struct{}

func (Encoder) Name() string { return "aiff" }

func (Encoder) NewSink(w io.Writer, f audio.Format) (audio.Sink, error) {
	return NewSink(w, f)
}

// Sink writes 24-bit big-endian PCM AIFF through go-audio/aiff.
type Sink struct {
	enc      aiffWriter
	buf      *goaudio.IntBuffer
	channels int
	frames   uint64
	closed   bool
}

// NewSink prepares an AIFF writer for f. The output must be a working
// io.WriteSeeker.
func NewSink(w io.Writer, f audio.Format) (*Sink, error) {
	if f.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, f.BitDepth)
	}
	if f.Channels <= 0 || f.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, f.Channels, f.SampleRate)
	}

	ws, ok := w.(io.WriteSeeker)
	if !ok {
		return nil, ErrNotSeekable
	}
	if _, err := ws.Seek(0, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}

	return newSink(aiff.NewEncoder(ws, f.SampleRate, f.BitDepth, f.Channels), f), nil
}

func newSink(enc aiffWriter, f audio.Format) *Sink {
	return &Sink{
		enc: enc,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.Channels,
				SampleRate:  f.SampleRate,
			},
			SourceBitDepth: f.BitDepth,
		},
		channels: f.Channels,
	}
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

	data := s.buf.Data[:0]
	for _, v := range samples {
		data = append(data, int(v))
	}
	s.buf.Data = data

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("encoding block: %w", err)
	}
	s.frames += uint64(len(samples) / s.channels)
	return nil
}

// Close patches the chunk sizes. The writer itself is left open.
func (s *Sink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	if s.frames == 0 {
		// The encoder only emits its header along with samples.
		s.buf.Data = s.buf.Data[:0]
		if err := s.enc.Write(s.buf); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("finalizing AIFF: %w", err)
	}
	return nil
}
