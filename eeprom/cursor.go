/*
NAME
  cursor.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package eeprom

import (
	"encoding/binary"
	"math"
)

// cursor is a small bounds-checked reader over a fixed EEPROM payload,
// advancing as fields are consumed. It mirrors the field-by-field reads
// the original munki.rs decoder performs, but without repeated manual
// slice arithmetic at each call site.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

// seek moves the cursor to an absolute offset.
func (c *cursor) seek(offset int) { c.pos = offset }

func (c *cursor) bytes(n int) []byte {
	if c.pos+n > len(c.data) {
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u16() (uint16, bool) {
	b := c.bytes(2)
	if b == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (c *cursor) u32() (uint32, bool) {
	b := c.bytes(4)
	if b == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (c *cursor) f32() (float32, bool) {
	b := c.bytes(4)
	if b == nil {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), true
}

func (c *cursor) u32Array(n int) ([]uint32, bool) {
	out := make([]uint32, n)
	for i := range out {
		v, ok := c.u32()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func (c *cursor) f32Array(n int) ([]float64, bool) {
	out := make([]float64, n)
	for i := range out {
		v, ok := c.f32()
		if !ok {
			return nil, false
		}
		out[i] = float64(v)
	}
	return out, true
}
