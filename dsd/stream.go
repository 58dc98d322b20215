// SPDX-License-Identifier: EPL-2.0

package dsd

import (
	"fmt"
	"io"
)

// Stream is one open decode session over a DSD container.
type Stream struct {
	src    io.Reader
	raw    *RawReader
	c      Container
	info   Info
	buf    *Buffer
	closed bool
}

// Open reads the four magic bytes from r, parses the matching container
// from reg and allocates the sample block. If r implements io.Closer it is
// closed by Stream.Close.
func Open(r io.Reader, reg *Registry) (*Stream, error) {
	raw := NewRawReader(r)

	magic := make([]byte, 4)
	if _, err := raw.ReadFull(magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}

	f, ok := reg.Get(string(magic))
	if !ok {
		return nil, fmt.Errorf("%w: magic %q", ErrUnknownFormat, magic)
	}

	c, err := f.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	info := c.Info()
	if info.Channels <= 0 {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNoChannels)
	}
	if info.SampleRate <= 0 {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNoSampleRate)
	}

	return &Stream{
		src:  r,
		raw:  raw,
		c:    c,
		info: info,
		buf:  NewBuffer(info.Channels, info.Layout),
	}, nil
}

func (s *Stream) Info() Info        { return s.info }
func (s *Stream) SampleRate() int   { return s.info.SampleRate }
func (s *Stream) Channels() int     { return s.info.Channels }
func (s *Stream) Format() string    { return s.info.Format }
func (s *Stream) Buffer() *Buffer   { return s.buf }
func (s *Stream) CanSeek() bool     { return s.raw.CanSeek() }
func (s *Stream) Offset() uint64    { return s.c.Cursor().Offset }
func (s *Stream) Stop() uint64      { return s.c.Cursor().Stop }
func (s *Stream) EOF() bool         { return s.c.Cursor().EOF() }
func (s *Stream) ByteOffset() int64 { return s.raw.Offset() }

// SetStart skips the first ms milliseconds of audio. Call it before the
// first Read.
func (s *Stream) SetStart(ms uint32) error {
	if s.closed {
		return ErrClosed
	}
	return s.c.SetStart(ms)
}

// SetStop ends the stream after ms milliseconds. It never extends the
// stream past its natural end.
func (s *Stream) SetStop(ms uint32) error {
	if s.closed {
		return ErrClosed
	}
	s.c.SetStop(ms)
	return nil
}

// Read fills the stream's buffer with the next block and returns it. The
// same buffer is reused by every call. At the end of the stream Read
// returns io.EOF, and keeps doing so.
func (s *Stream) Read() (*Buffer, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := s.c.Read(s.buf); err != nil {
		return nil, err
	}
	return s.buf, nil
}

// Close releases the sample block and closes the source if it is an
// io.Closer. Closing twice returns ErrClosed.
func (s *Stream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.buf = nil

	if c, ok := s.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing source: %w", err)
		}
	}
	return nil
}
