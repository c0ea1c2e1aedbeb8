/*
NAME
  lab.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import "math"

// CIE constants for the Lab forward/inverse companding function.
const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// Lab is a CIE L*a*b* color relative to some white point.
type Lab struct{ L, A, B float64 }

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > labEpsilon {
		return t3
	}
	return (116*t - 16) / labKappa
}

// ToLab converts XYZ (Y in [0,100]) to CIE L*a*b* relative to white point wp.
func ToLab(c XYZ, wp XYZ) Lab {
	fx := labF(c.X / wp.X)
	fy := labF(c.Y / wp.Y)
	fz := labF(c.Z / wp.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// ToXYZ converts a CIE L*a*b* color back to XYZ relative to white point wp.
func (l Lab) ToXYZ(wp XYZ) XYZ {
	fy := (l.L + 16) / 116
	fx := fy + l.A/500
	fz := fy - l.B/200
	return XYZ{
		X: labFInv(fx) * wp.X,
		Y: labFInv(fy) * wp.Y,
		Z: labFInv(fz) * wp.Z,
	}
}

// DeltaE76 is the Euclidean distance between two Lab colors.
func DeltaE76(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
