// SPDX-License-Identifier: EPL-2.0

// Package pcm turns blocks of 1-bit audio into 24-bit PCM words.
//
// Two output stages are provided:
//   - Demodulator low-pass filters each channel and produces one PCM
//     sample per input byte, i.e. at one eighth of the 1-bit rate.
//   - DoPPacker wraps two input bytes per channel into a DSD-over-PCM
//     word, at one sixteenth of the 1-bit rate, for DACs that decode DoP.
//
// Both keep per-channel state across calls and must serve exactly one
// stream. Samples are written interleaved as int32, either right-justified
// or shifted up by 8 bits (see Justify).
package pcm
