// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sort"
	"sync"
)

// Format describes the PCM stream handed to a Sink.
type Format struct {
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// BitDepth is the number of significant bits per sample.
	BitDepth int
}

// Sink consumes interleaved PCM blocks.
type Sink interface {
	// WriteBlock takes frames*channels right-justified samples. The slice
	// is reused by the caller once WriteBlock returns.
	WriteBlock(samples []int32) error

	// Close flushes pending data and finalizes the output. It does not
	// close the underlying writer.
	Close() error
}

// Encoder constructs a Sink writing to w.
type Encoder interface {
	Name() string
	NewSink(w io.Writer, f Format) (Sink, error)
}

// Registry for encoders by output format name (e.g., "flac", "wav", "raw").
type Registry struct {
	codecs map[string]Encoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Encoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(name string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[name] = e
}

func (r *Registry) Get(name string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.codecs[name]
	return e, ok
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
