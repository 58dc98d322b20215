// SPDX-License-Identifier: EPL-2.0

// Package dsd reads 1-bit DSD audio from container files.
//
// A Stream is opened over any io.Reader. The first four bytes select a
// container Format from a Registry; the format parses its header and then
// serves fixed-capacity blocks:
//
//	reg := dsd.NewRegistry(dsf.Decoder{}, dsdiff.Decoder{})
//	s, err := dsd.Open(file, reg)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	for {
//	    buf, err := s.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // buf.BytesPerChannel bytes are valid for each channel
//	}
//
// # Positions
//
// Positions are counted in byte-samples, one byte of one channel holding
// eight consecutive 1-bit samples. A position in milliseconds therefore
// maps to SampleRate*ms/8000 byte-samples.
//
// # Block Layout
//
// Blocks keep the arrangement of the container: DSDIFF interleaves one byte
// per channel, DSF stores a whole block of each channel in turn. The Layout
// stride pair hides the difference from code reading a Buffer.
//
// Sources that cannot seek, such as standard input, are supported as long
// as every seek moves forward; the skipped bytes are read and discarded.
package dsd
