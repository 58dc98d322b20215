// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"io"
)

// NonSeekable hides every method of r except Read, like a pipe.
type NonSeekable struct {
	r io.Reader
}

func NewNonSeekable(b []byte) *NonSeekable {
	return &NonSeekable{r: bytes.NewReader(b)}
}

func (n *NonSeekable) Read(p []byte) (int, error) { return n.r.Read(p) }

// ClosingReader is a seekable in-memory reader that counts Close calls.
type ClosingReader struct {
	*bytes.Reader
	Closed int
}

func NewClosingReader(b []byte) *ClosingReader {
	return &ClosingReader{Reader: bytes.NewReader(b)}
}

func (c *ClosingReader) Close() error {
	c.Closed++
	return nil
}
