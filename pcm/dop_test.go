// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"testing"

	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/config"
)

func stereoBlock(frames int, fill func(ch, i int) byte) *dsd.Buffer {
	buf := dsd.NewBuffer(2, dsd.Interleaved(2, frames))
	for ch := range 2 {
		for i := range frames {
			buf.Set(ch, i, fill(ch, i))
		}
	}
	buf.BytesPerChannel = frames
	return buf
}

func markerOf(v int32) byte { return byte(uint32(v) >> 16) }

func TestDoPPacker_MarkerAlternation(t *testing.T) {
	t.Parallel()

	var p DoPPacker
	out := make([]int32, 16)
	want := config.DoPMarkerLow

	// Odd frame counts make the sequence cross call boundaries on both
	// markers.
	for _, frames := range []int{3, 1, 4, 5} {
		buf := stereoBlock(2*frames, func(ch, i int) byte { return byte(i) })

		n, err := p.Pack(buf, out, RightJustified)
		if err != nil {
			t.Fatalf("Pack() error = %v", err)
		}
		if n != frames {
			t.Fatalf("Pack() = %d frames, want %d", n, frames)
		}

		for f := range n {
			for ch := range 2 {
				if got := markerOf(out[2*f+ch]); got != want {
					t.Fatalf("frame %d ch %d marker = %#02x, want %#02x", f, ch, got, want)
				}
			}
			want = config.DoPMarkerLow + config.DoPMarkerHigh - want
		}
	}

	if p.Marker() != want {
		t.Errorf("Marker() = %#02x, want %#02x", p.Marker(), want)
	}
}

func TestDoPPacker_Word(t *testing.T) {
	t.Parallel()

	buf := stereoBlock(4, func(ch, i int) byte {
		return [2][4]byte{{0x12, 0x34, 0xAB, 0xCD}, {0x56, 0x78, 0x00, 0xFF}}[ch][i]
	})

	var p DoPPacker
	out := make([]int32, 4)
	if _, err := p.Pack(buf, out, RightJustified); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	want := []int32{
		0x051234, 0x055678,
		// 0xFA in the top byte makes the word negative.
		-0x055433, -0x05FF01,
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %#x, want %#x", i, out[i], want[i])
		}
	}

	packed := make([]byte, 12)
	Pack24(packed, out)
	if packed[0] != 0x34 || packed[1] != 0x12 || packed[2] != 0x05 {
		t.Errorf("packed word = % x, want 34 12 05", packed[:3])
	}
	if packed[9] != 0xFF || packed[10] != 0x00 || packed[11] != 0xFA {
		t.Errorf("packed word = % x, want ff 00 fa", packed[9:])
	}
}

func TestDoPPacker_LeftJustified(t *testing.T) {
	t.Parallel()

	buf := stereoBlock(2, func(ch, i int) byte { return 0x11 * byte(1+i) })

	var p DoPPacker
	out := make([]int32, 2)
	p.Pack(buf, out, LeftJustified)

	if out[0] != 0x05112200 {
		t.Errorf("out[0] = %#x, want 0x05112200", out[0])
	}
	if Restore(out[0]) != 0x051122 {
		t.Errorf("Restore() = %#x, want 0x051122", Restore(out[0]))
	}
}

func TestDoPPacker_LSBInput(t *testing.T) {
	t.Parallel()

	buf := dsd.NewBuffer(1, dsd.Planar(2))
	buf.LSBFirst = true
	buf.Data[0], buf.Data[1] = 0x01, 0x03
	buf.BytesPerChannel = 2

	var p DoPPacker
	out := make([]int32, 1)
	p.Pack(buf, out, RightJustified)

	if out[0] != 0x0580C0 {
		t.Errorf("out[0] = %#x, want 0x0580c0", out[0])
	}
}

func TestDoPPacker_ShortOutput(t *testing.T) {
	t.Parallel()

	var p DoPPacker
	_, err := p.Pack(stereoBlock(8, func(int, int) byte { return 0 }), make([]int32, 3), RightJustified)
	if !errors.Is(err, ErrShortOutput) {
		t.Errorf("Pack() error = %v, want ErrShortOutput", err)
	}
	if p.Marker() != config.DoPMarkerLow {
		t.Error("failed Pack() advanced the marker")
	}
}
