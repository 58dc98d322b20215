// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM side of the conversion chain.
//
// This package contains:
//   - Sink and Encoder, the contract of every output format
//   - Registry for looking up encoders by name
//   - Resampler for sample rate conversion
//   - MonoMixer for channel downmixing
//
// # Sample Format
//
// Samples travel as interleaved int32 blocks. A Sink receives 24-bit values
// right-justified in each word. The Resampler works best on left-justified
// words (value << 8), which keep the low bits through interpolation:
//
//	r, _ := audio.NewResampler(2, 352800, 96000)
//	out := make([]int32, r.MaxOutput(len(block)))
//
//	n, _ := r.Process(block, out)
//	sink.WriteBlock(out[:n])
//
//	// at the end of the stream
//	n, _ = r.Flush(out)
//	sink.WriteBlock(out[:n])
//
// # Resampling
//
// Resampling uses cubic interpolation over a four frame window. When
// downsampling, a one-pole low-pass filter runs ahead of the
// interpolation. State is kept between Process calls, so a block boundary
// has no effect on the result.
//
// # Channel Mixing
//
// The MonoMixer averages the channels of every frame. It may write over its
// input:
//
//	mono := audio.NewMonoMixer(2)
//	n := mono.Mix(block, block)
//	block = block[:n]
//
// # Encoder Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Encoder{})
//	enc, _ := registry.Get("wav")
//	sink, _ := enc.NewSink(file, format)
package audio
