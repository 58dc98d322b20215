// SPDX-License-Identifier: EPL-2.0

package dsd

// Cursor tracks the read position of a stream.
//
// Offset and Stop count byte-samples: one byte-sample is one byte of one
// channel, i.e. eight consecutive 1-bit samples. Millisecond conversions
// therefore divide by 8000 rather than 1000.
type Cursor struct {
	// Offset is the next byte-sample to be read.
	Offset uint64
	// Stop is the exclusive end of the range to read.
	Stop uint64

	eof bool
}

// EOF reports whether the end of the stream has been reached. Once set it
// is never cleared.
func (c *Cursor) EOF() bool { return c.eof }

// MarkEOF sets the sticky end-of-stream flag.
func (c *Cursor) MarkEOF() { c.eof = true }

// Remaining returns the number of byte-samples left before Stop.
func (c *Cursor) Remaining() uint64 {
	if c.Offset >= c.Stop {
		return 0
	}
	return c.Stop - c.Offset
}

// Lower moves Stop to stop when it is strictly before the natural end,
// then marks the end of stream if Stop is already behind Offset.
func (c *Cursor) Lower(stop, natural uint64) {
	if stop < natural {
		c.Stop = stop
	}
	if c.Stop < c.Offset {
		c.eof = true
	}
}
