/*
NAME
  icc.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package icc writes V2.4 matrix-shaper (and optionally matrix+LUT) RGB
// "mntr" display profiles, PCS-referenced to D50, as a raw ICC byte
// stream.
package icc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/xrite/colormunki-core/colorimetry"
)

// headerSize is the fixed ICC profile header length.
const headerSize = 128

// tagTableEntrySize is the size of one (signature, offset, size) tag-table
// row.
const tagTableEntrySize = 12

// LUT describes an optional A2B0 perceptual lookup-table tag.
type LUT struct {
	// GridPoints is the number of CLUT samples per input channel (N).
	GridPoints int
	// Fill maps an (r,g,b) input in [0,1]^3 to a device-independent (X,Y,Z)
	// in [0,~2) PCS units. Perceptual-intent fills are expected to route
	// through a CAM02-UCS gamut-mapped pipeline; this package is agnostic
	// to how Fill computes its result.
	Fill func(r, g, b float64) (x, y, z float64)
}

// Profile is the minimal set of inputs needed to synthesize a V2.4
// matrix-shaper ICC profile.
type Profile struct {
	Description string
	Copyright   string

	WhitePoint colorimetry.XYZ // PCS D50-referenced media white point

	RedXYZ, GreenXYZ, BlueXYZ colorimetry.XYZ // PCS D50-referenced primaries

	RedGamma, GreenGamma, BlueGamma float64

	// LUT, if non-nil, is emitted as an additional A2B0 mft2 tag.
	LUT *LUT
}

// Write synthesizes the ICC byte stream and writes it to w.
func Write(w io.Writer, p Profile) error {
	type taggedBlock struct {
		sig  [4]byte
		body []byte
	}

	blocks := []taggedBlock{
		{sig: [4]byte{'d', 'e', 's', 'c'}, body: descTag(p.Description)},
		{sig: [4]byte{'w', 't', 'p', 't'}, body: xyzTag(p.WhitePoint)},
		{sig: [4]byte{'r', 'X', 'Y', 'Z'}, body: xyzTag(p.RedXYZ)},
		{sig: [4]byte{'g', 'X', 'Y', 'Z'}, body: xyzTag(p.GreenXYZ)},
		{sig: [4]byte{'b', 'X', 'Y', 'Z'}, body: xyzTag(p.BlueXYZ)},
		{sig: [4]byte{'r', 'T', 'R', 'C'}, body: curvTag(p.RedGamma)},
		{sig: [4]byte{'g', 'T', 'R', 'C'}, body: curvTag(p.GreenGamma)},
		{sig: [4]byte{'b', 'T', 'R', 'C'}, body: curvTag(p.BlueGamma)},
		{sig: [4]byte{'c', 'p', 'r', 't'}, body: textTag(p.Copyright)},
	}
	if p.LUT != nil {
		body, err := mft2Tag(*p.LUT)
		if err != nil {
			return fmt.Errorf("icc: A2B0: %w", err)
		}
		blocks = append(blocks, taggedBlock{sig: [4]byte{'A', '2', 'B', '0'}, body: body})
	}

	tagTableSize := 4 + len(blocks)*tagTableEntrySize
	offset := uint32(headerSize + tagTableSize)

	var tagTable bytes.Buffer
	binary.Write(&tagTable, binary.BigEndian, uint32(len(blocks)))
	var bodies bytes.Buffer
	for _, b := range blocks {
		tagTable.Write(b.sig[:])
		binary.Write(&tagTable, binary.BigEndian, offset)
		binary.Write(&tagTable, binary.BigEndian, uint32(len(b.body)))
		bodies.Write(b.body)
		offset += uint32(len(b.body))
	}

	total := offset

	var header bytes.Buffer
	writeU32(&header, total)
	header.WriteString("scrs")
	header.Write([]byte{0x02, 0x40, 0x00, 0x00})
	header.WriteString("mntr")
	header.WriteString("RGB ")
	header.WriteString("XYZ ")
	header.Write(make([]byte, 12)) // date/time, zeroed
	header.WriteString("acsp")
	header.WriteString("APPL")
	header.Write(make([]byte, 4))  // profile flags
	header.WriteString("none")     // device manufacturer
	header.WriteString("none")     // device model
	header.Write(make([]byte, 8))  // device attributes
	writeU32(&header, 0)           // rendering intent: perceptual
	writeS15Fixed16(&header, 0.9642)
	writeS15Fixed16(&header, 1.0)
	writeS15Fixed16(&header, 0.8249)
	header.WriteString("scrs") // profile creator
	header.Write(make([]byte, 44))

	if header.Len() != headerSize {
		return fmt.Errorf("icc: internal error: header length %d, want %d", header.Len(), headerSize)
	}

	for _, buf := range []*bytes.Buffer{&header, &tagTable, &bodies} {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("icc: write: %w", err)
		}
	}
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	binary.Write(buf, binary.BigEndian, v)
}

func writeS15Fixed16(buf *bytes.Buffer, v float64) {
	binary.Write(buf, binary.BigEndian, encodeS15Fixed16(v))
}

// descTag builds a V2 'desc' tag: ASCII text, NUL-terminated, followed by
// the 67-byte Mac-script padding spec.md calls for (rather than the full
// Unicode/Mac-name sections of the legacy format).
func descTag(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString("desc")
	buf.Write(make([]byte, 4)) // reserved
	writeU32(&buf, uint32(len(text)+1))
	buf.WriteString(text)
	buf.WriteByte(0)
	buf.Write(make([]byte, 67))
	return buf.Bytes()
}

// textTag builds a 'text' tag: ASCII, NUL-terminated.
func textTag(text string) []byte {
	var buf bytes.Buffer
	buf.WriteString("text")
	buf.Write(make([]byte, 4)) // reserved
	buf.WriteString(text)
	buf.WriteByte(0)
	return buf.Bytes()
}

// xyzTag builds an 'XYZ ' tag holding one tristimulus triple.
func xyzTag(c colorimetry.XYZ) []byte {
	var buf bytes.Buffer
	buf.WriteString("XYZ ")
	buf.Write(make([]byte, 4)) // reserved
	writeS15Fixed16(&buf, c.X/100)
	writeS15Fixed16(&buf, c.Y/100)
	writeS15Fixed16(&buf, c.Z/100)
	return buf.Bytes()
}

// curvTag builds a single-gamma 'curv' tag: count=1, gamma encoded as a
// u8Fixed8 value (indistinguishable, as a big-endian u16, from
// round(gamma*256)).
func curvTag(gamma float64) []byte {
	var buf bytes.Buffer
	buf.WriteString("curv")
	buf.Write(make([]byte, 4)) // reserved
	writeU32(&buf, 1)
	binary.Write(&buf, binary.BigEndian, uint16(math.Round(gamma*256)))
	buf.Write(make([]byte, 2)) // pad to 4-byte alignment
	return buf.Bytes()
}
