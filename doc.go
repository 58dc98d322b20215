// SPDX-License-Identifier: EPL-2.0

// Package dsdplay converts DSD audio (DSF and DSDIFF files) to 24-bit PCM
// or to DSD over PCM.
//
// # Quick Start
//
//	stream, _ := dsdplay.OpenFile("track.dsf")
//	defer stream.Close()
//
//	out, _ := os.Create("track.flac")
//	defer out.Close()
//
//	stats, err := dsdplay.Convert(ctx, stream, out, flac.Encoder{}, dsdplay.Options{
//		RateLimit: 96000,
//	})
//
// # Processing Chain
//
// NewPlan decides the chain once per stream from the container metadata
// and the Options:
//
//  1. blocks are read from the container and brought to MSB-first order
//  2. the optional halfrate stage decimates the 1-bit stream by two
//  3. each block is either packed into DoP words at 1/16 of the DSD rate,
//     or demodulated into PCM at 1/8 of the DSD rate
//  4. PCM may be downmixed to mono and resampled below the rate limit
//  5. complete frames go to an audio.Sink (FLAC, WAV or raw)
//
// DoP is switched off when the rate limit is below the DoP word rate; the
// stream is then demodulated instead.
//
// A Converter runs the chain for one stream. Its filter state lives in the
// Converter, so several streams can be converted concurrently.
package dsdplay
