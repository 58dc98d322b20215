// SPDX-License-Identifier: EPL-2.0

package dsdplay

import (
	"fmt"

	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/internal/config"
	"github.com/ik5/dsdplay/pcm"
)

// Options select how a DSD stream is converted.
type Options struct {
	// RateLimit is the highest output sample rate in Hz. Zero means no
	// limit. PCM output above the limit is resampled down to it; DoP output
	// is turned off when its word rate would exceed the limit.
	RateLimit int

	// StartMS skips audio before it, in milliseconds.
	StartMS uint32
	// StopMS ends the converted range when HasStop is set. A stop of 0
	// keeps the least the container allows: one block of a DSF file,
	// nothing of a DSDIFF file.
	StopMS  uint32
	HasStop bool

	// DoP packs the 1-bit stream into DSD over PCM words instead of
	// demodulating it.
	DoP bool
	// Halfrate decimates the 1-bit stream by two before any other stage.
	Halfrate bool
	// Mono averages all channels of the PCM output into one.
	Mono bool
}

// Plan is the processing chain derived from the stream and the options.
type Plan struct {
	// SourceRate and SourceChannels describe the 1-bit input.
	SourceRate     int
	SourceChannels int

	// DSDRate is the 1-bit rate after the optional halfrate stage.
	DSDRate  int
	Halfrate bool

	DoP bool
	// DoPDisabled is set when DoP was requested but the rate limit
	// forced PCM output.
	DoPDisabled bool

	// PCMRate is the rate of the demodulated or packed words, before
	// resampling.
	PCMRate int
	// OutputRate is the rate handed to the sink.
	OutputRate int
	Resample   bool

	Mono     bool
	Channels int

	// Justify is the placement of the demodulated samples. Left justified
	// samples keep their low bits through resampling.
	Justify pcm.Justify
}

// NewPlan computes the processing chain for a stream described by info.
func NewPlan(info dsd.Info, o Options) (Plan, error) {
	if info.Channels <= 0 {
		return Plan{}, dsd.ErrNoChannels
	}
	if info.SampleRate <= 0 {
		return Plan{}, dsd.ErrNoSampleRate
	}
	if o.RateLimit < 0 {
		return Plan{}, fmt.Errorf("%w: %d", ErrInvalidRateLimit, o.RateLimit)
	}

	p := Plan{
		SourceRate:     info.SampleRate,
		SourceChannels: info.Channels,
		DSDRate:        info.SampleRate,
		Halfrate:       o.Halfrate,
		DoP:            o.DoP,
		Mono:           o.Mono,
		Channels:       info.Channels,
		Justify:        pcm.RightJustified,
	}
	if p.Halfrate {
		p.DSDRate /= 2
	}

	if p.DoP && o.RateLimit != 0 && o.RateLimit < p.DSDRate/config.DoPDecimation {
		p.DoP = false
		p.DoPDisabled = true
	}

	if p.DoP {
		if p.Mono {
			return Plan{}, ErrMonoDoP
		}
		p.PCMRate = p.DSDRate / config.DoPDecimation
		p.OutputRate = p.PCMRate
		return p, nil
	}

	p.PCMRate = p.DSDRate / config.PCMDecimation
	p.OutputRate = p.PCMRate
	if o.RateLimit != 0 && o.RateLimit < p.PCMRate {
		p.OutputRate = o.RateLimit
		p.Resample = true
		p.Justify = pcm.LeftJustified
	}
	if p.Mono {
		p.Channels = 1
	}

	return p, nil
}

// Format returns the PCM format the sink receives.
func (p Plan) Format() audio.Format {
	return audio.Format{
		SampleRate: p.OutputRate,
		Channels:   p.Channels,
		BitDepth:   config.PCMBits,
	}
}

func (p Plan) String() string {
	mode := "pcm"
	if p.DoP {
		mode = "dop"
	}
	s := fmt.Sprintf("%s %d Hz, %d ch -> %s %d Hz", mode, p.SourceRate, p.SourceChannels, mode, p.PCMRate)
	if p.Halfrate {
		s += " (halfrate)"
	}
	if p.Resample {
		s += fmt.Sprintf(", resampled to %d Hz", p.OutputRate)
	}
	if p.Mono {
		s += ", mono"
	}
	return s
}
