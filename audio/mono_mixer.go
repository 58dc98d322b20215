// SPDX-License-Identifier: EPL-2.0

package audio

// MonoMixer averages interleaved frames down to a single channel.
type MonoMixer struct {
	channels int
}

func NewMonoMixer(channels int) *MonoMixer {
	return &MonoMixer{channels: channels}
}

func (m *MonoMixer) Channels() int { return 1 }

// Mix writes one averaged sample per frame of src into dst and returns
// the number of frames. dst may alias src.
func (m *MonoMixer) Mix(dst, src []int32) int {
	channels := m.channels
	if channels <= 1 {
		// Pass-through
		return copy(dst, src)
	}

	frames := min(len(src)/channels, len(dst))

	// Unrolled loop for common cases
	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1 // f * 2
			dst[f] = int32((int64(src[idx]) + int64(src[idx+1])) / 2)
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2 // f * 4
			sum := int64(src[idx]) + int64(src[idx+1]) + int64(src[idx+2]) + int64(src[idx+3])
			dst[f] = int32(sum / 4)
		}
	default: // Generic path
		for f := range frames {
			var sum int64
			baseIdx := f * channels
			for c := range channels {
				sum += int64(src[baseIdx+c])
			}
			dst[f] = int32(sum / int64(channels))
		}
	}

	return frames
}
