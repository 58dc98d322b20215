// SPDX-License-Identifier: EPL-2.0

// Package config holds the constants shared by the decoder packages and the
// parsing of user supplied positions.
package config

// Sampling frequencies of the common DSD rates.
const (
	DSD64  = 64 * 44100
	DSD128 = 2 * DSD64
	DSD256 = 4 * DSD64
	DSD512 = 8 * DSD64
)

const (
	// DSFBlockSize is the per-channel block size of DSF files.
	DSFBlockSize = 4096
	// DSDIFFBufferSize is the per-channel read size for DSDIFF files.
	DSDIFFBufferSize = 4096
	// DiscardChunk is the scratch size used to skip forward on pipes.
	DiscardChunk = 8 << 10
)

// DoP frame markers. Consecutive frames alternate between them, starting
// with DoPMarkerLow.
const (
	DoPMarkerLow  byte = 0x05
	DoPMarkerHigh byte = 0xFA
)

const (
	// PCMBits is the significant width of every PCM sample produced.
	PCMBits = 24
	// PCMDecimation is the ratio between the 1-bit and the PCM rate.
	PCMDecimation = 8
	// DoPDecimation is the ratio between the 1-bit and the DoP word rate.
	DoPDecimation = 16
)
