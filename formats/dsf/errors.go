// SPDX-License-Identifier: EPL-2.0

package dsf

import "errors"

var (
	// ErrInvalidDSDChunk indicates the root chunk does not declare 28 bytes.
	ErrInvalidDSDChunk = errors.New("invalid DSF root chunk")

	// ErrInvalidFmtChunk indicates a missing "fmt " tag or a size other than 52.
	ErrInvalidFmtChunk = errors.New("invalid DSF fmt chunk")

	// ErrUnsupportedVersion indicates a format version other than 1.
	ErrUnsupportedVersion = errors.New("unsupported DSF format version")

	// ErrUnsupportedFormatID indicates a compressed or unknown format id.
	ErrUnsupportedFormatID = errors.New("unsupported DSF format id")

	// ErrUnsupportedBlockSize indicates a block size other than 4096 bytes per channel.
	ErrUnsupportedBlockSize = errors.New("unsupported DSF block size")

	// ErrInvalidDataChunk indicates the "data" chunk header is missing.
	ErrInvalidDataChunk = errors.New("invalid DSF data chunk")

	// ErrInvalidPadding indicates the data chunk size does not match the sample count.
	ErrInvalidPadding = errors.New("DSF data size does not match sample count")
)
