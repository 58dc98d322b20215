// SPDX-License-Identifier: EPL-2.0

// Package flac writes 24-bit FLAC streams with github.com/mewkiz/flac.
//
// Samples are regrouped into frames of BlockSize samples per channel. The
// encoder picks the smallest of a constant, fixed-order (0 to 4) or verbatim
// subframe for every channel of every frame, using a single Rice partition.
// LPC analysis is not performed, so files are larger than the reference
// encoder's but still lossless.
//
// Rates up to MaxSampleRate are accepted. Frame headers only express rates
// up to 655350 Hz; above that, or when the rate has no exact header code,
// frames defer to the stream info block. DSD64 and DSD128 demodulate to
// 352800 and 705600 Hz and are written directly; DSD256 and faster sources
// need a rate limit.
//
// When the output is seekable the stream info block is rewritten on Close
// with the total sample count and the MD5 of the audio.
package flac
