// SPDX-License-Identifier: EPL-2.0

// Package dsdiff reads Philips DSDIFF files with uncompressed DSD data.
//
// Only the chunks needed for playback are interpreted: FVER, the sampling
// frequency and channel count inside PROP/SND, and the "DSD " data chunk.
// Everything else is skipped. DST compressed files are rejected with
// ErrCompressed.
package dsdiff
