// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// The helpers below unpack fixed-width integers from the start of b.
// They panic if b is shorter than the integer width, like encoding/binary.

func BE16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func BE32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func BE64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func LE16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func LE32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func LE64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// Tag reports whether the first four bytes of b spell tag.
func Tag(b []byte, tag string) bool {
	return len(b) >= 4 && len(tag) == 4 && string(b[:4]) == tag
}
