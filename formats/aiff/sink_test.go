// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/internal/audiotest"
)

var stereo24 = audio.Format{SampleRate: 352800, Channels: 2, BitDepth: 24}

// mockAiffWriter records what the sink hands to the encoder
type mockAiffWriter struct {
	writes  int
	samples []int
	closed  bool
	err     error
}

func (m *mockAiffWriter) Write(buf *goaudio.IntBuffer) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.samples = append(m.samples, buf.Data...)
	return nil
}

func (m *mockAiffWriter) Close() error {
	m.closed = true
	return m.err
}

func TestSink_RoundTrip(t *testing.T) {
	t.Parallel()

	want := []int32{0, 1, -1, 0x7FFFFF, -0x800000, 0x123456, -0x123456, 42}

	out := &audiotest.WriteSeeker{}
	sink, err := Encoder{}.NewSink(out, stereo24)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	if err := sink.WriteBlock(want); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	dec := aiff.NewDecoder(bytes.NewReader(out.Bytes()))
	if !dec.IsValidFile() {
		t.Fatal("output is not a valid AIFF file")
	}
	dec.ReadInfo()
	if int(dec.NumChans) != 2 || int(dec.SampleRate) != 352800 || int(dec.BitDepth) != 24 {
		t.Errorf("header = %d ch, %d Hz, %d bits", dec.NumChans, dec.SampleRate, dec.BitDepth)
	}

	buf := &goaudio.IntBuffer{Data: make([]int, 64), Format: dec.Format()}
	n, _ := dec.PCMBuffer(buf)
	if n != len(want) {
		t.Fatalf("decoded %d samples, want %d", n, len(want))
	}
	for i := range want {
		if buf.Data[i] != int(want[i]) {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestSink_Mock(t *testing.T) {
	t.Parallel()

	m := &mockAiffWriter{}
	sink := newSink(m, stereo24)

	if err := sink.WriteBlock([]int32{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := sink.WriteBlock(nil); err != nil {
		t.Fatalf("WriteBlock(nil) error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if m.writes != 1 || len(m.samples) != 4 || !m.closed {
		t.Errorf("encoder saw %d writes, %d samples, closed %v", m.writes, len(m.samples), m.closed)
	}
	if sink.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", sink.Frames())
	}
}

func TestSink_EmptyWritesHeader(t *testing.T) {
	t.Parallel()

	m := &mockAiffWriter{}
	sink := newSink(m, stereo24)
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if m.writes != 1 || len(m.samples) != 0 {
		t.Errorf("encoder saw %d writes, %d samples, want one empty write", m.writes, len(m.samples))
	}
}

func TestSink_EncoderError(t *testing.T) {
	t.Parallel()

	failure := errors.New("disk full")
	sink := newSink(&mockAiffWriter{err: failure}, stereo24)

	if err := sink.WriteBlock([]int32{1, 2}); !errors.Is(err, failure) {
		t.Errorf("WriteBlock() error = %v, want %v", err, failure)
	}
	if err := sink.Close(); !errors.Is(err, failure) {
		t.Errorf("Close() error = %v, want %v", err, failure)
	}
}

func TestNewSink_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format audio.Format
		pipe   bool
		want   error
	}{
		{"16 bit", audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, false, ErrUnsupportedBitDepth},
		{"no channels", audio.Format{SampleRate: 44100, BitDepth: 24}, false, ErrInvalidFormat},
		{"no rate", audio.Format{Channels: 2, BitDepth: 24}, false, ErrInvalidFormat},
		{"pipe", stereo24, true, ErrNotSeekable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err error
			if tt.pipe {
				_, err = NewSink(new(bytes.Buffer), tt.format)
			} else {
				_, err = NewSink(&audiotest.WriteSeeker{}, tt.format)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("NewSink() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSink_Closed(t *testing.T) {
	t.Parallel()

	sink := newSink(&mockAiffWriter{}, stereo24)

	if err := sink.WriteBlock([]int32{1}); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("WriteBlock() partial frame error = %v", err)
	}

	sink.Close()
	if err := sink.WriteBlock([]int32{1, 2}); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteBlock() after Close error = %v", err)
	}
	if err := sink.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v", err)
	}
}
