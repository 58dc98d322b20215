// SPDX-License-Identifier: EPL-2.0

package dsdiff

import "errors"

var (
	// ErrNotDSDForm indicates an FRM8 container whose form type is not "DSD ".
	ErrNotDSDForm = errors.New("not a DSD form")

	// ErrInvalidChunk indicates a chunk too small to hold its fixed fields.
	ErrInvalidChunk = errors.New("invalid DSDIFF chunk")

	// ErrUnsupportedVersion indicates a major version above 1.
	ErrUnsupportedVersion = errors.New("unsupported DSDIFF version")

	// ErrCompressed indicates DST compressed sound data.
	ErrCompressed = errors.New("DST compressed DSDIFF is not supported")

	// ErrMissingSoundData indicates the file ended before a "DSD " sound data chunk.
	ErrMissingSoundData = errors.New("no DSD sound data chunk")
)
