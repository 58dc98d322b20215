// SPDX-License-Identifier: EPL-2.0

package dsf

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/config"
	"github.com/ik5/dsdplay/utils"
)

const (
	// Magic is the tag that opens every DSF file.
	Magic = "DSD "

	// BlockSizePerChannel is the only block size the format allows.
	BlockSizePerChannel = config.DSFBlockSize

	dsdChunkSize   = 28
	fmtChunkSize   = 52
	dataHeaderSize = 12
)

// Header holds the fields of the DSF root and fmt chunks.
type Header struct {
	FileSize       uint64
	MetadataOffset uint64

	FormatVersion       uint32
	FormatID            uint32
	ChannelType         uint32
	Channels            uint32
	SampleRate          uint32
	BitsPerSample       uint32
	SampleCount         uint64
	BlockSizePerChannel uint32

	DataSize uint64
}

// Decoder parses DSF containers. Its zero value is ready to use.
type Decoder struct{}

func (Decoder) Name() string  { return "dsf" }
func (Decoder) Magic() string { return Magic }

// Open parses the three fixed headers and leaves r at the first sample byte.
func (Decoder) Open(r *dsd.RawReader) (dsd.Container, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	stop := hdr.SampleCount / 8
	layout := dsd.Planar(int(hdr.BlockSizePerChannel))
	layout.LSBFirst = hdr.BitsPerSample == 1

	return &source{
		r:   r,
		hdr: hdr,
		info: dsd.Info{
			Format:      "dsf",
			FileSize:    hdr.FileSize,
			Channels:    int(hdr.Channels),
			SampleRate:  int(hdr.SampleRate),
			SampleCount: hdr.SampleCount,
			DataOffset:  r.Offset(),
			DataSize:    stop * uint64(hdr.Channels),
			Layout:      layout,
		},
		cur: dsd.Cursor{Stop: stop},
	}, nil
}

func readHeader(r *dsd.RawReader) (Header, error) {
	var hdr Header

	// Root chunk, tag already consumed.
	buf := make([]byte, fmtChunkSize)
	if _, err := r.ReadFull(buf[:dsdChunkSize-4]); err != nil {
		return hdr, fmt.Errorf("reading root chunk: %w", err)
	}
	if utils.LE64(buf[0:8]) != dsdChunkSize {
		return hdr, ErrInvalidDSDChunk
	}
	hdr.FileSize = utils.LE64(buf[8:16])
	hdr.MetadataOffset = utils.LE64(buf[16:24])

	if _, err := r.ReadFull(buf); err != nil {
		return hdr, fmt.Errorf("reading fmt chunk: %w", err)
	}
	if !utils.Tag(buf, "fmt ") || utils.LE64(buf[4:12]) != fmtChunkSize {
		return hdr, ErrInvalidFmtChunk
	}
	hdr.FormatVersion = utils.LE32(buf[12:16])
	hdr.FormatID = utils.LE32(buf[16:20])
	hdr.ChannelType = utils.LE32(buf[20:24])
	hdr.Channels = utils.LE32(buf[24:28])
	hdr.SampleRate = utils.LE32(buf[28:32])
	hdr.BitsPerSample = utils.LE32(buf[32:36])
	hdr.SampleCount = utils.LE64(buf[36:44])
	hdr.BlockSizePerChannel = utils.LE32(buf[44:48])

	switch {
	case hdr.FormatVersion != 1:
		return hdr, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr.FormatVersion)
	case hdr.FormatID != 0:
		return hdr, fmt.Errorf("%w: %d", ErrUnsupportedFormatID, hdr.FormatID)
	case hdr.BlockSizePerChannel != BlockSizePerChannel:
		return hdr, fmt.Errorf("%w: %d", ErrUnsupportedBlockSize, hdr.BlockSizePerChannel)
	case hdr.Channels == 0:
		return hdr, dsd.ErrNoChannels
	case hdr.SampleRate == 0:
		return hdr, dsd.ErrNoSampleRate
	}

	if _, err := r.ReadFull(buf[:dataHeaderSize]); err != nil {
		return hdr, fmt.Errorf("reading data chunk: %w", err)
	}
	if !utils.Tag(buf, "data") {
		return hdr, ErrInvalidDataChunk
	}
	hdr.DataSize = utils.LE64(buf[4:12])

	// Every channel is stored in whole blocks, so the payload may exceed
	// the sample count by at most one block of padding per channel.
	pad := (int64(hdr.DataSize)-dataHeaderSize)/int64(hdr.Channels) - int64(hdr.SampleCount/8)
	if pad < 0 || pad > int64(hdr.BlockSizePerChannel) {
		return hdr, fmt.Errorf("%w: %d bytes of padding", ErrInvalidPadding, pad)
	}

	return hdr, nil
}

type source struct {
	r    *dsd.RawReader
	hdr  Header
	info dsd.Info
	cur  dsd.Cursor
}

func (s *source) Info() dsd.Info      { return s.info }
func (s *source) Cursor() *dsd.Cursor { return &s.cur }

// Header returns the parsed DSF headers.
func (s *source) Header() Header { return s.hdr }

// SetStart skips whole blocks only: the start position is rounded down to
// the block that contains it.
func (s *source) SetStart(ms uint32) error {
	block := uint64(s.hdr.BlockSizePerChannel)
	blocks := uint64(s.hdr.SampleRate) * uint64(ms) / (8000 * block)

	s.cur.Offset = blocks * block
	if err := s.r.Skip(int64(blocks * block * uint64(s.hdr.Channels))); err != nil {
		return fmt.Errorf("skipping %d blocks: %w", blocks, err)
	}
	return nil
}

// SetStop keeps every block up to and including the one containing ms.
func (s *source) SetStop(ms uint32) {
	block := uint64(s.hdr.BlockSizePerChannel)
	blocks := uint64(s.hdr.SampleRate)*uint64(ms)/(8000*block) + 1

	s.cur.Lower(blocks*block, s.hdr.SampleCount/8)
}

// Read always consumes a full block from the source. On the last block
// BytesPerChannel is clamped to what is left before the stop boundary and
// the padding is dropped.
func (s *source) Read(buf *dsd.Buffer) error {
	if s.cur.EOF() {
		return io.EOF
	}

	remaining := s.cur.Remaining()
	if remaining == 0 {
		s.cur.MarkEOF()
		return io.EOF
	}

	block := int(s.hdr.BlockSizePerChannel)
	n, err := s.r.ReadFull(buf.Data[:block*buf.Channels])
	if err != nil {
		if n == 0 && errors.Is(err, dsd.ErrShortRead) {
			s.cur.MarkEOF()
			return io.EOF
		}
		return fmt.Errorf("reading block at %d: %w", s.cur.Offset, err)
	}
	buf.LSBFirst = s.info.Layout.LSBFirst

	if uint64(block) >= remaining {
		buf.BytesPerChannel = int(remaining)
		s.cur.Offset += remaining
		s.cur.MarkEOF()
		return nil
	}

	buf.BytesPerChannel = block
	s.cur.Offset += uint64(block)
	return nil
}
