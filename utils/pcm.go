// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// PutInt16LE stores v little-endian in the first two bytes of b.
func PutInt16LE(b []byte, v int16) {
	binary.LittleEndian.PutUint16(b, uint16(v))
}

// Int16LE decodes a little-endian 16-bit sample from the first two bytes of b.
func Int16LE(b []byte) int16 {
	return int16(binary.LittleEndian.Uint16(b))
}
