// SPDX-License-Identifier: EPL-2.0

package dsd

import (
	"sync"
)

// Info is the stream metadata a container parser extracts at open.
type Info struct {
	// Format names the container variant, e.g. "dsf" or "dsdiff".
	Format string
	// FileSize is the total container size declared in the header.
	FileSize uint64

	Channels   int
	SampleRate int
	// SampleCount is the number of 1-bit samples per channel.
	SampleCount uint64

	// DataOffset is the byte offset of the first sample byte.
	DataOffset int64
	// DataSize is the length in bytes of the sample data for all channels.
	DataSize uint64

	// Layout of the blocks the container reads.
	Layout Layout
}

// Container serves sample blocks of one parsed DSD container.
type Container interface {
	Info() Info
	Cursor() *Cursor

	// SetStart skips the first ms milliseconds. It must be called before
	// the first Read.
	SetStart(ms uint32) error
	// SetStop ends the stream after ms milliseconds if that is before the
	// natural end.
	SetStop(ms uint32)

	// Read fills buf with the next block. It returns io.EOF once the end of
	// the stream has been reached and a wrapped ErrShortRead when the
	// source ends in the middle of a block.
	Read(buf *Buffer) error
}

// Format parses one container variant. Open is called with r positioned
// right after the four magic bytes.
type Format interface {
	Name() string
	Magic() string
	Open(r *RawReader) (Container, error)
}

// Registry maps container magic bytes to formats.
type Registry struct {
	formats map[string]Format

	mtx *sync.Mutex
}

func NewRegistry(formats ...Format) *Registry {
	r := &Registry{
		formats: make(map[string]Format),
		mtx:     &sync.Mutex{},
	}
	for _, f := range formats {
		r.Register(f)
	}
	return r
}

func (r *Registry) Register(f Format) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.formats[f.Magic()] = f
}

func (r *Registry) Get(magic string) (Format, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.formats[magic]
	return f, ok
}
