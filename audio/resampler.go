// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/dsdplay/utils"
)

// Resampler converts blocks of interleaved int32 samples to another sample
// rate using cubic interpolation. Samples are expected left-justified so
// that interpolation keeps the low bits. State carries over between
// Process calls; Flush drains the tail at the end of the stream.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	srcRate  int
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int

	// Ring buffer holding 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   int

	// Position between frames[1] and frames[2] (in source samples)
	pos float64

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState []float32
	useFilter   bool
	filterAlpha float32

	frame []float32
}

func NewResampler(channels, srcRate, dstRate int) (*Resampler, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, srcRate, dstRate)
	}

	ratio := float64(srcRate) / float64(dstRate)

	// Enable simple low-pass filter when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		// One-pole low-pass, see fetch.
		filterAlpha = 0.5
	}

	r := &Resampler{
		srcRate:     srcRate,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
		frame:       make([]float32, channels),
	}

	// Initialize frame buffers
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SrcRate() int  { return r.srcRate }
func (r *Resampler) DstRate() int  { return r.dstRate }
func (r *Resampler) Channels() int { return r.channels }

// MaxOutput returns the largest number of samples Process or Flush can
// write for inSamples input samples.
func (r *Resampler) MaxOutput(inSamples int) int {
	frames := inSamples / r.channels
	return (int(math.Ceil(float64(frames+3)/r.ratio)) + 1) * r.channels
}

// Process consumes every frame of in and writes the interpolated frames to
// out, returning the number of samples written. out must hold at least
// MaxOutput(len(in)) samples.
func (r *Resampler) Process(in, out []int32) (int, error) {
	if len(in)%r.channels != 0 || len(out)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for f := 0; f < len(in); f += r.channels {
		for c := range r.channels {
			r.frame[c] = float32(in[f+c])
		}
		written += r.push(r.frame, out[written:])
	}

	return written, nil
}

// Flush interpolates up to the last frame received, holding the edge
// frame in place of the missing future samples. It returns the number of
// samples written to out; out should hold MaxOutput(0) samples.
func (r *Resampler) Flush(out []int32) (int, error) {
	if len(out)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.primed == 0 {
		return 0, nil
	}

	// Steps needed to bring the last frame received to the
	// interpolation position.
	steps := 2
	written := 0
	if r.primed < len(r.frames) {
		steps = max(r.primed-2, 0)

		// Duplicate last valid frame for remaining slots
		last := r.frames[r.primed-1]
		for j := r.primed; j < len(r.frames); j++ {
			copy(r.frames[j], last)
			r.hasFrame[j] = true
		}
		written += r.emit(out)
	}

	for range steps {
		r.advance()
		r.hasFrame[3] = false
		written += r.emit(out[written:])
	}

	r.primed = 0
	r.pos = 0
	r.hasFrame = [4]bool{}
	return written, nil
}

// push adds one source frame and emits every output frame that became
// computable.
func (r *Resampler) push(frame []float32, out []int32) int {
	if r.primed < len(r.frames) {
		if r.primed == 0 && r.useFilter {
			// Initialize filter state with first sample to avoid warm-up transients
			copy(r.filterState, frame)
		}
		r.store(r.primed, frame)
		r.primed++
		if r.primed < len(r.frames) {
			return 0
		}
		return r.emit(out)
	}

	r.advance()
	r.store(3, frame)
	return r.emit(out)
}

// advance shifts frames: [0,1,2,3] -> [1,2,3,3]
func (r *Resampler) advance() {
	r.pos -= 1.0
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]
}

func (r *Resampler) store(slot int, frame []float32) {
	copy(r.frames[slot], frame)
	r.hasFrame[slot] = true

	// Apply simple low-pass filter if downsampling
	if r.useFilter {
		for c := range r.channels {
			// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			r.frames[slot][c] = r.filterAlpha*r.frames[slot][c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = r.frames[slot][c]
		}
	}
}

// emit writes output frames while the position lies between frames[1] and
// frames[2].
func (r *Resampler) emit(out []int32) int {
	written := 0

	for r.pos < 1.0 {
		// Cubic interpolation between frames
		alpha := float32(r.pos)

		for c := range r.channels {
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]

			// Use available frames, duplicate edge frames if needed
			y0 := y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			out[written+c] = toInt32(utils.CubicInterpolate(y0, y1, y2, y3, alpha))
		}

		written += r.channels
		r.pos += r.ratio
	}

	return written
}

// toInt32 rounds v and saturates it to the int32 range; cubic overshoot
// can leave full-scale input.
func toInt32(v float32) int32 {
	x := math.Round(float64(v))
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	if x <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(x)
}
