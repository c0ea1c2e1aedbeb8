/*
NAME
  s15fixed16.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package icc

import "math"

// encodeS15Fixed16 encodes a float64 as an ICC s15Fixed16Number: a signed
// 16.16 fixed-point value, big-endian.
func encodeS15Fixed16(v float64) int32 {
	return int32(math.Round(v * 65536))
}
