/*
NAME
  position.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package protocol

import "fmt"

// Position is the 5-way dial position reported by GET_STATUS.
type Position struct {
	kind byte
	raw  uint8
}

// Known positions. raw is fixed to the device byte each maps from, so that
// decodePosition can return these exact values and == comparisons work as
// expected.
var (
	Projector   = Position{kind: 'P', raw: 0}
	Surface     = Position{kind: 'S', raw: 1}
	Calibration = Position{kind: 'C', raw: 2}
	Ambient     = Position{kind: 'A', raw: 3}
)

// Unknown wraps an unrecognized raw dial byte.
func Unknown(raw uint8) Position {
	return Position{kind: 'U', raw: raw}
}

// Raw returns the original device byte, for diagnostics.
func (p Position) Raw() uint8 { return p.raw }

// IsUnknown reports whether p is an Unknown(raw) position.
func (p Position) IsUnknown() bool { return p.kind == 'U' }

func (p Position) String() string {
	switch p.kind {
	case 'P':
		return "Projector"
	case 'S':
		return "Surface"
	case 'C':
		return "Calibration"
	case 'A':
		return "Ambient"
	default:
		return fmt.Sprintf("Unknown(%d)", p.raw)
	}
}

// decodePosition maps the raw GET_STATUS byte to a Position. This is the
// sole mapping implemented: 0=Projector, 1=Surface, 2=Calibration,
// 3=Ambient, per spec.md §9 open question 1's resolution.
func decodePosition(raw uint8) Position {
	switch raw {
	case 0:
		return Projector
	case 1:
		return Surface
	case 2:
		return Calibration
	case 3:
		return Ambient
	default:
		return Unknown(raw)
	}
}
