// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds synthetic DSD containers and test doubles.
// It does not import the packages under test to avoid cycles.
package audiotest

import (
	"bytes"
	"encoding/binary"
)

// PayloadFunc returns byte i of channel ch.
type PayloadFunc func(ch, i int) byte

// Silence is the idle 1-bit pattern (equal ones and zeros).
func Silence(ch, i int) byte { return 0x69 }

// Ramp fills every channel with a distinct counting pattern.
func Ramp(ch, i int) byte { return byte(i + 37*ch) }

// DSF describes a frame-based container. Start from NewDSF and adjust the
// fields a test needs to break.
type DSF struct {
	Channels      uint32
	SampleRate    uint32
	SampleCount   uint64
	BitsPerSample uint32
	BlockSize     uint32

	FormatVersion uint32
	FormatID      uint32
	DSDChunkSize  uint64
	FmtChunkSize  uint64
	FmtTag        string
	DataTag       string
	// DataSizeDelta is added to the declared data chunk size.
	DataSizeDelta int64
	// Truncate drops this many bytes from the end of the file.
	Truncate int

	Payload PayloadFunc
}

// NewDSF returns a valid description of a DSF file.
func NewDSF(channels, sampleRate uint32, sampleCount uint64) DSF {
	return DSF{
		Channels:      channels,
		SampleRate:    sampleRate,
		SampleCount:   sampleCount,
		BitsPerSample: 1,
		BlockSize:     4096,
		FormatVersion: 1,
		DSDChunkSize:  28,
		FmtChunkSize:  52,
		FmtTag:        "fmt ",
		DataTag:       "data",
		Payload:       Ramp,
	}
}

// Blocks returns the number of whole blocks per channel the file stores.
func (d DSF) Blocks() int {
	perCh := int(d.SampleCount / 8)
	bs := int(d.BlockSize)
	if bs == 0 {
		return 0
	}
	return (perCh + bs - 1) / bs
}

// Bytes renders the file.
func (d DSF) Bytes() []byte {
	bs := int(d.BlockSize)
	perCh := int(d.SampleCount / 8)
	blocks := d.Blocks()
	dataLen := blocks * bs * int(d.Channels)

	buf := new(bytes.Buffer)

	buf.WriteString("DSD ")
	binary.Write(buf, binary.LittleEndian, d.DSDChunkSize)
	binary.Write(buf, binary.LittleEndian, uint64(28+52+12+dataLen))
	binary.Write(buf, binary.LittleEndian, uint64(0))

	buf.WriteString(d.FmtTag)
	binary.Write(buf, binary.LittleEndian, d.FmtChunkSize)
	binary.Write(buf, binary.LittleEndian, d.FormatVersion)
	binary.Write(buf, binary.LittleEndian, d.FormatID)
	binary.Write(buf, binary.LittleEndian, uint32(2)) // stereo channel type
	binary.Write(buf, binary.LittleEndian, d.Channels)
	binary.Write(buf, binary.LittleEndian, d.SampleRate)
	binary.Write(buf, binary.LittleEndian, d.BitsPerSample)
	binary.Write(buf, binary.LittleEndian, d.SampleCount)
	binary.Write(buf, binary.LittleEndian, d.BlockSize)
	binary.Write(buf, binary.LittleEndian, uint32(0))

	buf.WriteString(d.DataTag)
	binary.Write(buf, binary.LittleEndian, uint64(int64(12+dataLen)+d.DataSizeDelta))

	for b := range blocks {
		for ch := range int(d.Channels) {
			for j := range bs {
				i := b*bs + j
				if i < perCh {
					buf.WriteByte(d.Payload(ch, i))
				} else {
					buf.WriteByte(0)
				}
			}
		}
	}

	out := buf.Bytes()
	return out[:len(out)-min(d.Truncate, len(out))]
}

// Chunk is a raw DSDIFF chunk.
type Chunk struct {
	ID   string
	Data []byte
}

// DSDIFF describes a chunk-based container. Start from NewDSDIFF.
type DSDIFF struct {
	Channels   uint16
	SampleRate uint32
	// Frames is the number of bytes per channel of sound data.
	Frames int

	FormType string
	Version  byte
	NoFVER   bool
	PropType string
	NoFS     bool
	// Extra chunks are written between PROP and the sound data.
	Extra []Chunk
	// DataID names the sound data chunk; empty omits it.
	DataID   string
	Truncate int

	Payload PayloadFunc
}

// NewDSDIFF returns a valid description of a DSDIFF file.
func NewDSDIFF(channels uint16, sampleRate uint32, frames int) DSDIFF {
	return DSDIFF{
		Channels:   channels,
		SampleRate: sampleRate,
		Frames:     frames,
		FormType:   "DSD ",
		Version:    1,
		PropType:   "SND ",
		DataID:     "DSD ",
		Payload:    Ramp,
	}
}

var channelIDs = []string{"SLFT", "SRGT", "C   ", "LFE ", "LS  ", "RS  "}

func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.BigEndian, uint64(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}

// Bytes renders the file.
func (d DSDIFF) Bytes() []byte {
	body := new(bytes.Buffer)

	if !d.NoFVER {
		writeChunk(body, "FVER", []byte{d.Version, 5, 0, 0})
	}

	prop := new(bytes.Buffer)
	prop.WriteString(d.PropType)
	if !d.NoFS {
		fs := make([]byte, 4)
		binary.BigEndian.PutUint32(fs, d.SampleRate)
		writeChunk(prop, "FS  ", fs)
	}
	chnl := new(bytes.Buffer)
	binary.Write(chnl, binary.BigEndian, d.Channels)
	for i := range int(d.Channels) {
		chnl.WriteString(channelIDs[i%len(channelIDs)])
	}
	writeChunk(prop, "CHNL", chnl.Bytes())
	writeChunk(prop, "CMPR", append([]byte("DSD \x0enot compressed"), 0))
	writeChunk(body, "PROP", prop.Bytes())

	for _, c := range d.Extra {
		writeChunk(body, c.ID, c.Data)
	}

	if d.DataID != "" {
		data := make([]byte, 0, d.Frames*int(d.Channels))
		for i := range d.Frames {
			for ch := range int(d.Channels) {
				data = append(data, d.Payload(ch, i))
			}
		}
		writeChunk(body, d.DataID, data)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("FRM8")
	binary.Write(buf, binary.BigEndian, uint64(4+body.Len()))
	buf.WriteString(d.FormType)
	buf.Write(body.Bytes())

	out := buf.Bytes()
	return out[:len(out)-min(d.Truncate, len(out))]
}
