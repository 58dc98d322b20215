// SPDX-License-Identifier: EPL-2.0

package dsf

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/audiotest"
)

const dsd64 = 2822400

func open(t *testing.T, r io.Reader) *dsd.Stream {
	t.Helper()

	s, err := dsd.Open(r, dsd.NewRegistry(Decoder{}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// readAll drains s and returns the size of every block.
func readAll(t *testing.T, s *dsd.Stream) []int {
	t.Helper()

	var sizes []int
	for {
		buf, err := s.Read()
		if err == io.EOF {
			return sizes
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		sizes = append(sizes, buf.BytesPerChannel)
	}
}

func TestDecoder_ShortFile(t *testing.T) {
	t.Parallel()

	s := open(t, bytes.NewReader(audiotest.NewDSF(2, dsd64, 80).Bytes()))

	if s.Stop() != 10 {
		t.Fatalf("Stop() = %d, want 10", s.Stop())
	}

	buf, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if buf.BytesPerChannel != 10 {
		t.Errorf("BytesPerChannel = %d, want 10", buf.BytesPerChannel)
	}
	if !s.EOF() {
		t.Error("EOF() = false after the only block")
	}

	if _, err := s.Read(); err != io.EOF {
		t.Errorf("second Read() error = %v, want io.EOF", err)
	}
}

func TestDecoder_Info(t *testing.T) {
	t.Parallel()

	s := open(t, bytes.NewReader(audiotest.NewDSF(2, dsd64, 80).Bytes()))
	info := s.Info()

	if info.Format != "dsf" || info.Channels != 2 || info.SampleRate != dsd64 {
		t.Errorf("Info() = %+v", info)
	}
	if info.SampleCount != 80 || info.DataSize != 20 {
		t.Errorf("SampleCount = %d, DataSize = %d; want 80, 20", info.SampleCount, info.DataSize)
	}
	if info.DataOffset != 28+52+12 {
		t.Errorf("DataOffset = %d, want 92", info.DataOffset)
	}
	if !info.Layout.LSBFirst || info.Layout.SampleStep != 1 || info.Layout.Capacity != BlockSizePerChannel {
		t.Errorf("Layout = %+v, want LSB-first planar blocks", info.Layout)
	}
}

func TestDecoder_Header(t *testing.T) {
	t.Parallel()

	r := dsd.NewRawReader(bytes.NewReader(audiotest.NewDSF(1, 5644800, 8*4096).Bytes()))
	r.Skip(4)

	c, err := Decoder{}.Open(r)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	hdr := c.(*source).Header()
	if hdr.FormatVersion != 1 || hdr.Channels != 1 || hdr.SampleRate != 5644800 {
		t.Errorf("Header() = %+v", hdr)
	}
	if hdr.DataSize != 12+4096 {
		t.Errorf("DataSize = %d, want %d", hdr.DataSize, 12+4096)
	}
}

func TestDecoder_InvalidHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*audiotest.DSF)
		want   error
	}{
		{"root chunk size", func(d *audiotest.DSF) { d.DSDChunkSize = 30 }, ErrInvalidDSDChunk},
		{"fmt chunk size", func(d *audiotest.DSF) { d.FmtChunkSize = 50 }, ErrInvalidFmtChunk},
		{"fmt tag", func(d *audiotest.DSF) { d.FmtTag = "fmt!" }, ErrInvalidFmtChunk},
		{"version", func(d *audiotest.DSF) { d.FormatVersion = 2 }, ErrUnsupportedVersion},
		{"format id", func(d *audiotest.DSF) { d.FormatID = 1 }, ErrUnsupportedFormatID},
		{"block size", func(d *audiotest.DSF) { d.BlockSize = 2048 }, ErrUnsupportedBlockSize},
		{"no channels", func(d *audiotest.DSF) { d.Channels = 0 }, dsd.ErrNoChannels},
		{"no sample rate", func(d *audiotest.DSF) { d.SampleRate = 0 }, dsd.ErrNoSampleRate},
		{"data tag", func(d *audiotest.DSF) { d.DataTag = "date" }, ErrInvalidDataChunk},
		{"too much padding", func(d *audiotest.DSF) { d.DataSizeDelta = 2 * 4096 }, ErrInvalidPadding},
		{"truncated header", func(d *audiotest.DSF) { d.Truncate = 2*4096 + 20 }, dsd.ErrShortRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := audiotest.NewDSF(2, dsd64, 80)
			tt.modify(&d)

			_, err := dsd.Open(bytes.NewReader(d.Bytes()), dsd.NewRegistry(Decoder{}))
			if !errors.Is(err, tt.want) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_NegativePadding(t *testing.T) {
	t.Parallel()

	d := audiotest.NewDSF(2, dsd64, 8*4096)
	d.DataSizeDelta = -2

	_, err := dsd.Open(bytes.NewReader(d.Bytes()), dsd.NewRegistry(Decoder{}))
	if !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("Open() error = %v, want ErrInvalidPadding", err)
	}
}

func TestDecoder_BlockContents(t *testing.T) {
	t.Parallel()

	d := audiotest.NewDSF(2, dsd64, 8*(4096+100))
	s := open(t, bytes.NewReader(d.Bytes()))

	buf, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !buf.LSBFirst {
		t.Error("LSBFirst = false for 1 bit per sample")
	}
	for ch := range 2 {
		for _, i := range []int{0, 1, 4095} {
			if got, want := buf.At(ch, i), audiotest.Ramp(ch, i); got != want {
				t.Errorf("At(%d, %d) = %d, want %d", ch, i, got, want)
			}
		}
	}

	buf, err = s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if buf.BytesPerChannel != 100 {
		t.Errorf("last BytesPerChannel = %d, want 100", buf.BytesPerChannel)
	}
	if got, want := buf.At(1, 99), audiotest.Ramp(1, 4096+99); got != want {
		t.Errorf("At(1, 99) = %d, want %d", got, want)
	}
	if !s.EOF() || s.Offset() != 4196 {
		t.Errorf("EOF() = %v, Offset() = %d; want true, 4196", s.EOF(), s.Offset())
	}
}

func TestDecoder_MSBFirst(t *testing.T) {
	t.Parallel()

	d := audiotest.NewDSF(1, dsd64, 80)
	d.BitsPerSample = 8
	s := open(t, bytes.NewReader(d.Bytes()))

	buf, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if buf.LSBFirst {
		t.Error("LSBFirst = true for 8 bits per sample")
	}
}

func TestDecoder_SetStart(t *testing.T) {
	t.Parallel()

	for _, seekable := range []bool{true, false} {
		data := audiotest.NewDSF(2, dsd64, 8*4096*10).Bytes()

		var r io.Reader = bytes.NewReader(data)
		if !seekable {
			r = audiotest.NewNonSeekable(data)
		}
		s := open(t, r)

		// 100 ms of DSD64 is 35280 byte-samples, inside block 8.
		if err := s.SetStart(100); err != nil {
			t.Fatalf("SetStart() error = %v", err)
		}
		if s.Offset() != 8*4096 {
			t.Errorf("seekable=%v: Offset() = %d, want %d", seekable, s.Offset(), 8*4096)
		}

		buf, err := s.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got, want := buf.At(1, 0), audiotest.Ramp(1, 8*4096); got != want {
			t.Errorf("seekable=%v: first byte = %d, want %d", seekable, got, want)
		}
	}
}

func TestDecoder_SetStop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    uint32
		stop     uint32
		wantStop uint64
	}{
		// The block containing the stop position is kept.
		{"inside", 0, 100, 9 * 4096},
		{"first block", 0, 0, 4096},
		{"past end", 0, 10_000, 10 * 4096},
		{"after start", 100, 120, 11 * 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := open(t, bytes.NewReader(audiotest.NewDSF(2, dsd64, 8*4096*10).Bytes()))
			if err := s.SetStart(tt.start); err != nil {
				t.Fatalf("SetStart() error = %v", err)
			}
			start := s.Offset()
			s.SetStop(tt.stop)

			want := min(tt.wantStop, 10*4096)
			if s.Stop() != want {
				t.Errorf("Stop() = %d, want %d", s.Stop(), want)
			}

			total := 0
			for _, n := range readAll(t, s) {
				total += n
			}
			if uint64(total) != want-start {
				t.Errorf("read %d bytes per channel, want %d", total, want-start)
			}
		})
	}
}

func TestDecoder_StopBeforeStart(t *testing.T) {
	t.Parallel()

	s := open(t, bytes.NewReader(audiotest.NewDSF(2, dsd64, 8*4096*10).Bytes()))
	if err := s.SetStart(100); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	s.SetStop(10)

	if !s.EOF() {
		t.Fatal("EOF() = false with stop before start")
	}
	if _, err := s.Read(); err != io.EOF {
		t.Errorf("Read() error = %v, want io.EOF", err)
	}
}

func TestDecoder_Truncated(t *testing.T) {
	t.Parallel()

	t.Run("at block boundary", func(t *testing.T) {
		t.Parallel()

		d := audiotest.NewDSF(2, dsd64, 8*4096*2)
		d.Truncate = 2 * 4096
		s := open(t, bytes.NewReader(d.Bytes()))

		if sizes := readAll(t, s); len(sizes) != 1 || sizes[0] != 4096 {
			t.Errorf("block sizes = %v, want [4096]", sizes)
		}
	})

	t.Run("inside block", func(t *testing.T) {
		t.Parallel()

		d := audiotest.NewDSF(2, dsd64, 8*4096*2)
		d.Truncate = 10
		s := open(t, bytes.NewReader(d.Bytes()))

		if _, err := s.Read(); err != nil {
			t.Fatalf("first Read() error = %v", err)
		}
		if _, err := s.Read(); !errors.Is(err, dsd.ErrShortRead) {
			t.Errorf("second Read() error = %v, want ErrShortRead", err)
		}
	})
}
