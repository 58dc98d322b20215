// SPDX-License-Identifier: EPL-2.0

package audiotest

import "errors"

// ErrSinkFull is returned by CaptureSink once FailAfter blocks were written.
var ErrSinkFull = errors.New("capture sink full")

// CaptureSink records every block written to it.
type CaptureSink struct {
	Blocks  int
	Samples []int32
	Closed  bool

	// FailAfter makes WriteBlock fail once this many blocks were
	// accepted. Zero disables the failure.
	FailAfter int
}

func (c *CaptureSink) WriteBlock(samples []int32) error {
	if c.FailAfter > 0 && c.Blocks >= c.FailAfter {
		return ErrSinkFull
	}
	c.Blocks++
	c.Samples = append(c.Samples, samples...)
	return nil
}

func (c *CaptureSink) Close() error {
	c.Closed = true
	return nil
}
