/*
NAME
  jzazbz.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package jzazbz implements the Jzazbz HDR-uniform color space (Safdar et
// al., 2017) and its Cz/hz polar form.
package jzazbz

import (
	"math"

	"github.com/xrite/colormunki-core/colorimetry"
)

// Jzazbz is a perceptually-uniform HDR color coordinate: Jz is lightness
// (no upper bound), az is the red-green opponent, bz is the blue-yellow
// opponent.
type Jzazbz struct {
	Jz, Az, Bz float64
}

// Safdar et al. 2017 constants.
const (
	constB  = 1.15
	constG  = 0.66
	constC1 = 0.8359375      // 3424/4096
	constC2 = 18.8515625     // 2413/128
	constC3 = 18.6875        // 2392/128
	constN  = 0.15930175781  // 2610/16384
	constP  = 134.034375     // 1.7*2523/32
	constD  = -0.56
	constD0 = 1.6295499532821566e-11
)

// FromXYZ converts an absolute XYZ color (D65-referenced, Y in cd/m^2; for
// SDR content normalized so Y<=100 the result simply falls in a lower Jz
// range) into Jzazbz.
func FromXYZ(c colorimetry.XYZ) Jzazbz {
	xp := constB*c.X - (constB-1)*c.Z
	yp := constG*c.Y - (constG-1)*c.X

	l := 0.41478972*xp + 0.579999*yp + 0.0146480*c.Z
	m := -0.2015100*xp + 1.120649*yp + 0.0531008*c.Z
	s := -0.0166008*xp + 0.264800*yp + 0.6684799*c.Z

	lp := pq(l)
	mp := pq(m)
	sp := pq(s)

	iz := 0.5 * (lp + mp)
	az := 3.524000*lp - 4.066708*mp + 0.542708*sp
	bz := 0.199076*lp + 1.096799*mp - 1.295875*sp

	jz := ((1+constD)*iz)/(1+constD*iz) - constD0

	return Jzazbz{Jz: jz, Az: az, Bz: bz}
}

// pq applies the SMPTE ST 2084 perceptual-quantizer transfer function used
// by the Jzazbz LMS stage.
func pq(x float64) float64 {
	x = math.Max(x/10000.0, 0)
	xn := math.Pow(x, constN)
	return math.Pow((constC1+constC2*xn)/(1+constC3*xn), constP)
}

// DeltaEz is the Jzazbz Euclidean color difference: simpler than ΔE2000
// and, per Safdar et al., still a faithful perceptual-difference measure
// thanks to Jzazbz's uniformity.
func DeltaEz(a, b Jzazbz) float64 {
	dj := a.Jz - b.Jz
	da := a.Az - b.Az
	db := a.Bz - b.Bz
	return math.Sqrt(dj*dj + da*da + db*db)
}

// Chroma returns Cz, the Jzazbz chroma magnitude.
func (j Jzazbz) Chroma() float64 {
	return math.Hypot(j.Az, j.Bz)
}

// Hue returns hz, the Jzazbz hue angle in degrees, [0,360).
func (j Jzazbz) Hue() float64 {
	h := math.Atan2(j.Bz, j.Az) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

// Mix linearly interpolates between two Jzazbz colors; ratio is clamped to
// [0,1].
func Mix(a, b Jzazbz, ratio float64) Jzazbz {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return Jzazbz{
		Jz: a.Jz*(1-ratio) + b.Jz*ratio,
		Az: a.Az*(1-ratio) + b.Az*ratio,
		Bz: a.Bz*(1-ratio) + b.Bz*ratio,
	}
}
