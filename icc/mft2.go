/*
NAME
  mft2.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package icc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// linearTableEntries is the size of the 2-point identity input/output
// tables that bracket the mft2 CLUT: a straight 0..65535 ramp, since all
// tone shaping happens inside the CLUT itself.
const linearTableEntries = 2

// mft2Tag builds an A2B0 'mft2' (lut16Type) tag: a 3-in/3-out CLUT with
// identity linear input/output tables and an identity 3x3 matrix, so the
// CLUT alone carries the R,G,B -> X,Y,Z mapping.
func mft2Tag(l LUT) ([]byte, error) {
	if l.GridPoints < 2 || l.GridPoints > 255 {
		return nil, fmt.Errorf("icc: LUT.GridPoints = %d, want [2,255]", l.GridPoints)
	}
	if l.Fill == nil {
		return nil, fmt.Errorf("icc: LUT.Fill is nil")
	}
	n := l.GridPoints

	var buf bytes.Buffer
	buf.WriteString("mft2")
	buf.Write(make([]byte, 4)) // reserved
	buf.WriteByte(3)           // input channels
	buf.WriteByte(3)           // output channels
	buf.WriteByte(byte(n))     // CLUT grid points
	buf.WriteByte(0)           // reserved

	// Identity PCS-side matrix: the CLUT does all the work.
	identity := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for _, v := range identity {
		writeS15Fixed16(&buf, v)
	}

	binary.Write(&buf, binary.BigEndian, uint16(linearTableEntries)) // input table entries
	binary.Write(&buf, binary.BigEndian, uint16(linearTableEntries)) // output table entries

	for ch := 0; ch < 3; ch++ {
		writeLinearRamp(&buf)
	}

	step := 1.0 / float64(n-1)
	for ri := 0; ri < n; ri++ {
		r := float64(ri) * step
		for gi := 0; gi < n; gi++ {
			g := float64(gi) * step
			for bi := 0; bi < n; bi++ {
				b := float64(bi) * step
				x, y, z := l.Fill(r, g, b)
				binary.Write(&buf, binary.BigEndian, clutSample(x))
				binary.Write(&buf, binary.BigEndian, clutSample(y))
				binary.Write(&buf, binary.BigEndian, clutSample(z))
			}
		}
	}

	for ch := 0; ch < 3; ch++ {
		writeLinearRamp(&buf)
	}

	return buf.Bytes(), nil
}

func writeLinearRamp(buf *bytes.Buffer) {
	binary.Write(buf, binary.BigEndian, uint16(0))
	binary.Write(buf, binary.BigEndian, uint16(65535))
}

// clutSample scales a PCS-normalized value (nominally [0,1], permitted to
// overshoot slightly for out-of-gamut primaries) into the mft2 u16 CLUT
// encoding.
func clutSample(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1.9999 {
		v = 1.9999
	}
	return uint16(math.Round(v * 32768))
}
