/*
NAME
  checksum.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package eeprom

import "encoding/binary"

// checksumSkipOffset is the byte offset of the stored checksum word itself;
// it is excluded from the running sum.
const checksumSkipOffset = 8

// checksum computes the wrapping 32-bit little-endian word sum of data,
// skipping the 4-byte word at checksumSkipOffset. A trailing partial word
// of 1-3 bytes is zero-extended on the right and included.
func checksum(data []byte) uint32 {
	var sum uint32
	n := len(data)
	for off := 0; off+4 <= n; off += 4 {
		if off == checksumSkipOffset {
			continue
		}
		sum += binary.LittleEndian.Uint32(data[off : off+4])
	}
	if rem := n % 4; rem != 0 {
		var tail [4]byte
		copy(tail[:], data[n-rem:])
		sum += binary.LittleEndian.Uint32(tail[:])
	}
	return sum
}
