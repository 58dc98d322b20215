// SPDX-License-Identifier: EPL-2.0

// Package raw writes headerless interleaved PCM for piping into an external
// encoder.
package raw
