// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-audio/wav"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/internal/audiotest"
)

var stereo24 = audio.Format{SampleRate: 352800, Channels: 2, BitDepth: 24}

func TestSink_Seekable(t *testing.T) {
	t.Parallel()

	out := &audiotest.WriteSeeker{}
	sink, err := NewSink(out, stereo24)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}

	blocks := [][]int32{
		{0, 1, -1, 0x7FFFFF},
		{-0x800000, 12345, -54321, 42},
	}
	for _, b := range blocks {
		if err := sink.WriteBlock(b); err != nil {
			t.Fatalf("WriteBlock() error = %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if sink.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", sink.Frames())
	}

	dec := wav.NewDecoder(bytes.NewReader(out.Bytes()))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if dec.SampleRate != 352800 || dec.NumChans != 2 || dec.BitDepth != 24 {
		t.Errorf("decoded format = %d Hz, %d ch, %d bits", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	want := append(append([]int32(nil), blocks[0]...), blocks[1]...)
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if int32(buf.Data[i]) != want[i] {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestSink_Empty(t *testing.T) {
	t.Parallel()

	out := &audiotest.WriteSeeker{}
	sink, err := NewSink(out, stereo24)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(out.Bytes()))
	if !dec.IsValidFile() {
		t.Error("empty output is not a valid WAV file")
	}
}

func TestSink_Stream(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	sink, err := NewSink(out, stereo24)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.WriteBlock([]int32{0x123456, -2}); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data := out.Bytes()
	if len(data) != 44+6 {
		t.Fatalf("output is %d bytes, want 50", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Errorf("header tags = %q %q %q", data[0:4], data[8:12], data[36:40])
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 352800 {
		t.Errorf("sample rate = %d, want 352800", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 24 {
		t.Errorf("bits per sample = %d, want 24", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 352800*6 {
		t.Errorf("byte rate = %d, want %d", got, 352800*6)
	}
	if !bytes.Equal(data[44:], []byte{0x56, 0x34, 0x12, 0xFE, 0xFF, 0xFF}) {
		t.Errorf("samples = % x", data[44:])
	}
}

func TestSink_InvalidFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format audio.Format
		want   error
	}{
		{"16 bit", audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, ErrUnsupportedBitDepth},
		{"no channels", audio.Format{SampleRate: 44100, BitDepth: 24}, ErrInvalidFormat},
		{"no rate", audio.Format{Channels: 2, BitDepth: 24}, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewSink(new(bytes.Buffer), tt.format); !errors.Is(err, tt.want) {
				t.Errorf("NewSink() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSink_Errors(t *testing.T) {
	t.Parallel()

	sink, err := NewSink(new(bytes.Buffer), stereo24)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}

	if err := sink.WriteBlock([]int32{1, 2, 3}); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("WriteBlock() partial frame error = %v", err)
	}

	sink.Close()
	if err := sink.WriteBlock([]int32{1, 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteBlock() after Close error = %v, want ErrClosed", err)
	}
	if err := sink.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
}

func TestEncoder(t *testing.T) {
	t.Parallel()

	var e audio.Encoder = Encoder{}
	if e.Name() != "wav" {
		t.Errorf("Name() = %q, want wav", e.Name())
	}
	if _, err := e.NewSink(&audiotest.WriteSeeker{}, stereo24); err != nil {
		t.Errorf("NewSink() error = %v", err)
	}
}
