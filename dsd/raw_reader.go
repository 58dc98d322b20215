// SPDX-License-Identifier: EPL-2.0

package dsd

import (
	"fmt"
	"io"

	"github.com/ik5/dsdplay/internal/config"
)

// discardChunk is the size of the scratch buffer used to emulate forward
// seeks on sources that cannot seek.
const discardChunk = config.DiscardChunk

// RawReader reads a byte source sequentially and tracks how many bytes have
// been consumed. Sources that cannot seek only support forward movement,
// which is emulated by reading and discarding.
type RawReader struct {
	r       io.Reader
	seeker  io.Seeker
	offset  int64
	scratch []byte
}

// NewRawReader wraps r. r is treated as seekable only when it implements
// io.Seeker and a no-op seek on it succeeds, so pipes and terminals fall
// back to discard reading.
func NewRawReader(r io.Reader) *RawReader {
	rr := &RawReader{r: r}
	if s, ok := r.(io.Seeker); ok {
		if pos, err := s.Seek(0, io.SeekCurrent); err == nil {
			rr.seeker = s
			rr.offset = pos
		}
	}
	return rr
}

// CanSeek reports whether the underlying source supports random access.
func (rr *RawReader) CanSeek() bool { return rr.seeker != nil }

// Offset returns the number of bytes consumed so far.
func (rr *RawReader) Offset() int64 { return rr.offset }

// ReadFull fills dst completely. The offset advances by the bytes actually
// read; anything less than len(dst) is reported as ErrShortRead, together
// with the byte count so callers can tell an empty read from a partial one.
func (rr *RawReader) ReadFull(dst []byte) (int, error) {
	n, err := io.ReadFull(rr.r, dst)
	rr.offset += int64(n)
	if err == nil {
		return n, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(dst))
	}
	return n, fmt.Errorf("reading %d bytes at offset %d: %w", len(dst), rr.offset-int64(n), err)
}

// Skip moves forward by n bytes from the current position.
func (rr *RawReader) Skip(n int64) error {
	return rr.Seek(n, io.SeekCurrent)
}

// Seek moves to offset according to whence, which must be io.SeekStart or
// io.SeekCurrent. On failure the tracked offset of a seekable source is left
// untouched.
func (rr *RawReader) Seek(offset int64, whence int) error {
	if whence != io.SeekStart && whence != io.SeekCurrent {
		return ErrInvalidWhence
	}

	if rr.seeker != nil {
		pos, err := rr.seeker.Seek(offset, whence)
		if err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		rr.offset = pos
		return nil
	}

	skip := offset
	if whence == io.SeekStart {
		skip = offset - rr.offset
	}
	if skip < 0 {
		return ErrSeekBackward
	}
	return rr.discard(skip)
}

func (rr *RawReader) discard(n int64) error {
	if rr.scratch == nil {
		rr.scratch = make([]byte, discardChunk)
	}
	for n > 0 {
		chunk := rr.scratch[:min(n, int64(len(rr.scratch)))]
		if _, err := rr.ReadFull(chunk); err != nil {
			return err
		}
		n -= int64(len(chunk))
	}
	return nil
}
