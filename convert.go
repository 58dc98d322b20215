// SPDX-License-Identifier: EPL-2.0

package dsdplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/pcm"
)

// Stats counts the progress of a conversion.
type Stats struct {
	// Blocks read from the container.
	Blocks int
	// BytesPerChannel is the number of 1-bit bytes consumed per channel.
	BytesPerChannel uint64
	// Frames handed to the sink.
	Frames uint64
}

// Converter drives one stream through the chain described by a Plan and
// writes the result to a sink. A Converter is not safe for concurrent use.
type Converter struct {
	// Logger receives the plan and a summary when set.
	Logger *log.Logger
	// Progress is called after every block when set.
	Progress func(Stats)

	stream *dsd.Stream
	plan   Plan
	sink   audio.Sink

	halfrate  *dsd.HalfrateFilter
	dop       pcm.DoPPacker
	demod     *pcm.Demodulator
	mixer     *audio.MonoMixer
	resampler *audio.Resampler

	words []int32
	out   []int32

	stats Stats
}

// NewConverter prepares the stages of plan for s. The sink must have been
// created for plan.Format().
func NewConverter(s *dsd.Stream, plan Plan, sink audio.Sink) (*Converter, error) {
	if s.Channels() != plan.SourceChannels || s.SampleRate() != plan.SourceRate {
		return nil, fmt.Errorf("plan for %d Hz, %d ch does not match stream %d Hz, %d ch",
			plan.SourceRate, plan.SourceChannels, s.SampleRate(), s.Channels())
	}

	c := &Converter{
		stream: s,
		plan:   plan,
		sink:   sink,
	}

	block := s.Buffer()
	if plan.Halfrate {
		c.halfrate = dsd.NewHalfrateFilter(block)
		block = c.halfrate.Output()
	}

	c.words = make([]int32, block.Capacity*block.Channels)
	if plan.DoP {
		return c, nil
	}

	c.demod = pcm.NewDemodulator(block.Channels, block.Capacity)
	if plan.Mono && block.Channels > 1 {
		c.mixer = audio.NewMonoMixer(block.Channels)
	}
	if plan.Resample {
		r, err := audio.NewResampler(plan.Channels, plan.PCMRate, plan.OutputRate)
		if err != nil {
			return nil, fmt.Errorf("creating resampler: %w", err)
		}
		c.resampler = r
		c.out = make([]int32, r.MaxOutput(block.Capacity*plan.Channels))
	}

	return c, nil
}

// Stats returns the progress so far.
func (c *Converter) Stats() Stats { return c.stats }

// Run reads the stream to its end, converting every block and writing it
// to the sink. It does not close the sink or the stream. A loop that ends
// without reaching the end of the stream returns dsd.ErrEOFExpected.
func (c *Converter) Run(ctx context.Context) (Stats, error) {
	if c.Logger != nil {
		c.Logger.Printf("converting %s: %s", c.stream.Format(), c.plan)
	}

	for {
		if err := ctx.Err(); err != nil {
			return c.stats, err
		}

		buf, err := c.stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return c.stats, fmt.Errorf("reading block %d: %w", c.stats.Blocks, err)
		}

		c.stats.Blocks++
		c.stats.BytesPerChannel += uint64(buf.BytesPerChannel)

		if err := c.convert(buf); err != nil {
			return c.stats, err
		}
		if c.Progress != nil {
			c.Progress(c.stats)
		}
	}

	if !c.stream.EOF() {
		return c.stats, dsd.ErrEOFExpected
	}

	if c.resampler != nil {
		n, err := c.resampler.Flush(c.out)
		if err != nil {
			return c.stats, fmt.Errorf("draining resampler: %w", err)
		}
		if err := c.write(c.out[:n]); err != nil {
			return c.stats, err
		}
	}

	if c.Logger != nil {
		c.Logger.Printf("done: %d blocks, %d bytes per channel, %d frames",
			c.stats.Blocks, c.stats.BytesPerChannel, c.stats.Frames)
	}
	return c.stats, nil
}

// convert takes one block through the chain.
func (c *Converter) convert(buf *dsd.Buffer) error {
	buf.ToMSB()
	if c.halfrate != nil {
		buf = c.halfrate.Process(buf)
	}

	if c.plan.DoP {
		frames, err := c.dop.Pack(buf, c.words, pcm.RightJustified)
		if err != nil {
			return fmt.Errorf("packing DoP: %w", err)
		}
		return c.write(c.words[:frames*buf.Channels])
	}

	frames, err := c.demod.Convert(buf, c.words, c.plan.Justify)
	if err != nil {
		return fmt.Errorf("demodulating: %w", err)
	}
	samples := c.words[:frames*buf.Channels]

	if c.mixer != nil {
		samples = samples[:c.mixer.Mix(samples, samples)]
	}

	if c.resampler != nil {
		n, err := c.resampler.Process(samples, c.out)
		if err != nil {
			return fmt.Errorf("resampling: %w", err)
		}
		samples = c.out[:n]
	}

	return c.write(samples)
}

// write hands complete frames to the sink, bringing left-justified samples
// back to 24 bits first.
func (c *Converter) write(samples []int32) error {
	if len(samples) == 0 {
		return nil
	}
	if c.plan.Justify == pcm.LeftJustified {
		for i, v := range samples {
			samples[i] = pcm.Restore(v)
		}
	}

	if err := c.sink.WriteBlock(samples); err != nil {
		return fmt.Errorf("writing block: %w", err)
	}
	c.stats.Frames += uint64(len(samples) / c.plan.Channels)
	return nil
}
