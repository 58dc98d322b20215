// SPDX-License-Identifier: EPL-2.0

package dsdiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/config"
	"github.com/ik5/dsdplay/utils"
)

const (
	// Magic is the root chunk id of every DSDIFF file.
	Magic = "FRM8"
	// FormType follows the root chunk size.
	FormType = "DSD "

	// BufferSize is the number of bytes per channel read by each block.
	BufferSize = config.DSDIFFBufferSize

	chunkHeaderSize = 12
)

// Decoder parses DSDIFF containers. Its zero value is ready to use.
type Decoder struct{}

func (Decoder) Name() string  { return "dsdiff" }
func (Decoder) Magic() string { return Magic }

type chunkHeader struct {
	id   string
	size uint64
}

func readChunkHeader(r *dsd.RawReader, buf []byte) (chunkHeader, error) {
	if _, err := r.ReadFull(buf[:chunkHeaderSize]); err != nil {
		return chunkHeader{}, err
	}
	return chunkHeader{id: string(buf[:4]), size: utils.BE64(buf[4:12])}, nil
}

// skip moves past n bytes of chunk data and the pad byte that follows
// chunks of odd length.
func skip(r *dsd.RawReader, n uint64) error {
	return r.Skip(int64(n + n&1))
}

// Open walks the top-level chunks until the sound data chunk and leaves r
// at its first byte.
func (Decoder) Open(r *dsd.RawReader) (dsd.Container, error) {
	buf := make([]byte, chunkHeaderSize)

	if _, err := r.ReadFull(buf); err != nil {
		return nil, fmt.Errorf("reading form header: %w", err)
	}
	if !utils.Tag(buf[8:], FormType) {
		return nil, fmt.Errorf("%w: %q", ErrNotDSDForm, buf[8:12])
	}

	s := &source{
		r:        r,
		fileSize: utils.BE64(buf[:8]) + chunkHeaderSize,
	}

	for {
		head, err := readChunkHeader(r, buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingSoundData, err)
		}

		switch head.id {
		case "FVER":
			if head.size != 4 {
				return nil, fmt.Errorf("%w: FVER of %d bytes", ErrInvalidChunk, head.size)
			}
			if _, err := r.ReadFull(buf[:4]); err != nil {
				return nil, fmt.Errorf("reading FVER: %w", err)
			}
			if buf[0] > 1 {
				return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, buf[0], buf[1])
			}
		case "PROP":
			if err := s.parseProp(head, buf); err != nil {
				return nil, err
			}
		case "DSD ":
			return s.start(head)
		case "DST ":
			return nil, ErrCompressed
		default:
			if err := skip(r, head.size); err != nil {
				return nil, fmt.Errorf("%w: skipping %q: %w", ErrMissingSoundData, head.id, err)
			}
		}
	}
}

// parseProp reads the sampling frequency and channel count from a sound
// property chunk. Property chunks of any other type are skipped.
func (s *source) parseProp(head chunkHeader, buf []byte) error {
	if head.size < 4 {
		return fmt.Errorf("%w: PROP of %d bytes", ErrInvalidChunk, head.size)
	}
	end := uint64(s.r.Offset()) + head.size

	if _, err := s.r.ReadFull(buf[:4]); err != nil {
		return fmt.Errorf("reading PROP type: %w", err)
	}
	if !utils.Tag(buf, "SND ") {
		return skip(s.r, head.size-4)
	}

	for uint64(s.r.Offset()) < end {
		sub, err := readChunkHeader(s.r, buf)
		if err != nil {
			return fmt.Errorf("reading PROP: %w", err)
		}

		switch sub.id {
		case "FS  ":
			if sub.size < 4 {
				return fmt.Errorf("%w: FS of %d bytes", ErrInvalidChunk, sub.size)
			}
			if _, err := s.r.ReadFull(buf[:4]); err != nil {
				return fmt.Errorf("reading FS: %w", err)
			}
			s.sampleRate = utils.BE32(buf)
			err = skip(s.r, sub.size-4)
		case "CHNL":
			if sub.size < 2 {
				return fmt.Errorf("%w: CHNL of %d bytes", ErrInvalidChunk, sub.size)
			}
			if _, err := s.r.ReadFull(buf[:2]); err != nil {
				return fmt.Errorf("reading CHNL: %w", err)
			}
			s.channels = uint32(utils.BE16(buf))
			err = skip(s.r, sub.size-2)
		default:
			err = skip(s.r, sub.size)
		}
		if err != nil {
			return fmt.Errorf("skipping PROP/%q: %w", sub.id, err)
		}
	}

	return nil
}

// start finishes parsing at the sound data chunk.
func (s *source) start(head chunkHeader) (dsd.Container, error) {
	if s.channels == 0 {
		return nil, dsd.ErrNoChannels
	}
	if s.sampleRate == 0 {
		return nil, dsd.ErrNoSampleRate
	}

	ch := uint64(s.channels)
	s.dataSize = head.size
	s.sampleCount = 8 * head.size / ch
	s.cur = dsd.Cursor{Stop: s.sampleCount / 8}
	s.dataOffset = s.r.Offset()

	return s, nil
}

type source struct {
	r *dsd.RawReader

	fileSize    uint64
	channels    uint32
	sampleRate  uint32
	sampleCount uint64
	dataOffset  int64
	dataSize    uint64

	cur dsd.Cursor
}

func (s *source) Info() dsd.Info {
	return dsd.Info{
		Format:      "dsdiff",
		FileSize:    s.fileSize,
		Channels:    int(s.channels),
		SampleRate:  int(s.sampleRate),
		SampleCount: s.sampleCount,
		DataOffset:  s.dataOffset,
		DataSize:    s.dataSize,
		Layout:      dsd.Interleaved(int(s.channels), BufferSize),
	}
}

func (s *source) Cursor() *dsd.Cursor { return &s.cur }

// SetStart skips exactly to the byte-sample that contains ms.
func (s *source) SetStart(ms uint32) error {
	s.cur.Offset = uint64(s.sampleRate) * uint64(ms) / 8000
	if err := s.r.Skip(int64(s.cur.Offset * uint64(s.channels))); err != nil {
		return fmt.Errorf("skipping to %d ms: %w", ms, err)
	}
	return nil
}

// SetStop ends the stream at the byte-sample that contains ms.
func (s *source) SetStop(ms uint32) {
	include := uint64(s.sampleRate) * uint64(ms) / 8000
	ch := uint64(s.channels)

	// include*ch < dataSize, expressed as a bound on include.
	s.cur.Lower(include, (s.dataSize+ch-1)/ch)
}

// Read fetches up to BufferSize bytes per channel, never past the stop
// boundary.
func (s *source) Read(buf *dsd.Buffer) error {
	if s.cur.EOF() {
		return io.EOF
	}

	n := min(s.cur.Remaining(), uint64(buf.Capacity))
	if n == 0 {
		s.cur.MarkEOF()
		return io.EOF
	}

	got, err := s.r.ReadFull(buf.Data[:int(n)*buf.Channels])
	if err != nil {
		if got == 0 && errors.Is(err, dsd.ErrShortRead) {
			s.cur.MarkEOF()
			return io.EOF
		}
		return fmt.Errorf("reading block at %d: %w", s.cur.Offset, err)
	}
	buf.LSBFirst = false
	buf.BytesPerChannel = int(n)

	s.cur.Offset += n
	if s.cur.Offset >= s.cur.Stop {
		s.cur.MarkEOF()
	}
	return nil
}
