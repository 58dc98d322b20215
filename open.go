// SPDX-License-Identifier: EPL-2.0

package dsdplay

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/formats/aiff"
	"github.com/ik5/dsdplay/formats/dsdiff"
	"github.com/ik5/dsdplay/formats/dsf"
	"github.com/ik5/dsdplay/formats/flac"
	"github.com/ik5/dsdplay/formats/raw"
	"github.com/ik5/dsdplay/formats/wav"
)

// Containers returns a registry of every supported DSD container.
func Containers() *dsd.Registry {
	return dsd.NewRegistry(dsf.Decoder{}, dsdiff.Decoder{})
}

// Encoders returns a registry of every output format. "raw32" is the raw
// format with 32-bit words.
func Encoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("aiff", aiff.Encoder{})
	r.Register("flac", flac.Encoder{})
	r.Register("wav", wav.Encoder{})
	r.Register("raw", raw.Encoder{})
	r.Register("raw32", raw.Encoder{Word32: true})
	return r
}

// Open parses the DSD container at the start of r.
func Open(r io.Reader) (*dsd.Stream, error) {
	return dsd.Open(r, Containers())
}

// OpenFile opens the named DSD file. An empty name or "-" reads standard
// input, which is never seeked and is not closed with the stream.
func OpenFile(name string) (*dsd.Stream, error) {
	if name == "" || name == "-" {
		return Open(struct{ io.Reader }{os.Stdin})
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	s, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Convert applies o to s and writes the result to w through enc. The sink
// is finalized but neither s nor w is closed.
func Convert(ctx context.Context, s *dsd.Stream, w io.Writer, enc audio.Encoder, o Options) (Stats, error) {
	plan, err := NewPlan(s.Info(), o)
	if err != nil {
		return Stats{}, err
	}

	if o.StartMS != 0 {
		if err := s.SetStart(o.StartMS); err != nil {
			return Stats{}, fmt.Errorf("setting start: %w", err)
		}
	}
	if o.HasStop {
		if err := s.SetStop(o.StopMS); err != nil {
			return Stats{}, fmt.Errorf("setting stop: %w", err)
		}
	}

	sink, err := enc.NewSink(w, plan.Format())
	if err != nil {
		return Stats{}, fmt.Errorf("creating %s sink: %w", enc.Name(), err)
	}

	c, err := NewConverter(s, plan, sink)
	if err != nil {
		sink.Close()
		return Stats{}, err
	}

	stats, err := c.Run(ctx)
	if err != nil {
		sink.Close()
		return stats, err
	}
	if err := sink.Close(); err != nil {
		return stats, fmt.Errorf("closing %s sink: %w", enc.Name(), err)
	}
	return stats, nil
}
