// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/pcm"
)

// Encoder creates WAV sinks. Its zero value is ready to use.
type Encoder struct{}

func (Encoder) Name() string { return "wav" }

func (Encoder) NewSink(w io.Writer, f audio.Format) (audio.Sink, error) {
	return NewSink(w, f)
}

// Sink writes 24-bit PCM WAV. Seekable outputs get exact header sizes via
// go-audio/wav; anything else is streamed with open-ended sizes.
type Sink struct {
	format audio.Format

	enc *wav.Encoder
	buf *goaudio.IntBuffer

	stream  io.Writer
	scratch []byte

	frames uint64
	closed bool
}

// NewSink prepares a WAV writer for f. BitDepth must be 24.
func NewSink(w io.Writer, f audio.Format) (*Sink, error) {
	if f.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, f.BitDepth)
	}
	if f.Channels <= 0 || f.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, f.Channels, f.SampleRate)
	}

	s := &Sink{format: f}

	if ws, ok := w.(io.WriteSeeker); ok && seekable(ws) {
		s.enc = wav.NewEncoder(ws, f.SampleRate, f.BitDepth, f.Channels, 1)
		s.buf = &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.Channels,
				SampleRate:  f.SampleRate,
			},
			SourceBitDepth: f.BitDepth,
		}
		return s, nil
	}

	if err := writeStreamHeader(w, f); err != nil {
		return nil, err
	}
	s.stream = w
	return s, nil
}

// seekable rules out write seekers that fail to seek, such as a terminal
// or a pipe behind *os.File.
func seekable(ws io.WriteSeeker) bool {
	_, err := ws.Seek(0, io.SeekCurrent)
	return err == nil
}

// Frames returns the number of frames written so far.
func (s *Sink) Frames() uint64 { return s.frames }

func (s *Sink) WriteBlock(samples []int32) error {
	if s.closed {
		return ErrClosed
	}
	if len(samples)%s.format.Channels != 0 {
		return audio.ErrInvalidDstSize
	}
	if len(samples) == 0 {
		return nil
	}
	s.frames += uint64(len(samples) / s.format.Channels)

	if s.enc != nil {
		data := s.buf.Data[:0]
		for _, v := range samples {
			data = append(data, int(v))
		}
		s.buf.Data = data

		if err := s.enc.Write(s.buf); err != nil {
			return fmt.Errorf("encoding block: %w", err)
		}
		return nil
	}

	if cap(s.scratch) < 3*len(samples) {
		s.scratch = make([]byte, 3*len(samples))
	}
	n := pcm.Pack24(s.scratch[:3*len(samples)], samples)
	if _, err := s.stream.Write(s.scratch[:n]); err != nil {
		return fmt.Errorf("writing block: %w", err)
	}
	return nil
}

// Close finalizes the header of a seekable output. The writer itself is
// left open.
func (s *Sink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	if s.enc != nil {
		if s.frames == 0 {
			// The encoder only emits its header along with samples.
			s.buf.Data = s.buf.Data[:0]
			if err := s.enc.Write(s.buf); err != nil {
				return fmt.Errorf("writing header: %w", err)
			}
		}
		if err := s.enc.Close(); err != nil {
			return fmt.Errorf("finalizing WAV: %w", err)
		}
	}
	return nil
}
