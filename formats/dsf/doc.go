// SPDX-License-Identifier: EPL-2.0

// Package dsf reads Sony DSD Stream Files.
//
// A DSF file has a 28-byte "DSD " chunk, a 52-byte "fmt " chunk and a
// "data" chunk. Sample data is stored in blocks of BlockSizePerChannel
// bytes for each channel in turn, least significant bit first when the
// header declares one bit per sample. The last block is zero padded.
//
// Start and stop positions are rounded to whole blocks: SetStart drops the
// blocks before the one containing the position and SetStop keeps the
// block containing it.
//
//	stream, err := dsd.Open(file, dsd.NewRegistry(dsf.Decoder{}))
package dsf
