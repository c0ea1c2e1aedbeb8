/*
NAME
  reference.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package tm30

import "math"

const (
	planckC1 = 3.741771e-16
	planckC2 = 1.4388e-2
)

// referenceSPD generates the TM-30 reference illuminant SPD on the 5nm
// grid for a given CCT: Planckian below 4000K, CIE daylight above 5000K,
// and a linear blend between.
func referenceSPD(cct float64) []float64 {
	switch {
	case cct < 4000:
		return planckianSPD(cct)
	case cct > 5000:
		return daylightSPD(cct)
	default:
		p := (5000 - cct) / 1000
		planck := planckianSPD(cct)
		day := daylightSPD(cct)
		out := make([]float64, gridN)
		for i := range out {
			out[i] = p*planck[i] + (1-p)*day[i]
		}
		return out
	}
}

func planckianSPD(tempK float64) []float64 {
	grid := grid5nm()
	out := make([]float64, len(grid))
	for i, wlNm := range grid {
		wl := wlNm * 1e-9
		out[i] = planckC1 * math.Pow(wl, -5) / (math.Exp(planckC2/(wl*tempK)) - 1)
	}
	return out
}

func daylightSPD(tempK float64) []float64 {
	var xD float64
	if tempK <= 7000 {
		xD = -4.6070e9/cube(tempK) + 2.9678e6/sq(tempK) + 0.09911e3/tempK + 0.244063
	} else {
		xD = -2.0064e9/cube(tempK) + 1.9018e6/sq(tempK) + 0.24748e3/tempK + 0.237040
	}
	yD := -3.000*xD*xD + 2.870*xD - 0.275

	denom := 0.0241 + 0.2562*xD - 0.7341*yD
	m1 := (-1.3515 - 1.7703*xD + 5.9114*yD) / denom
	m2 := (0.0300 - 31.4424*xD + 30.0717*yD) / denom

	src := cmfGrid10nm380to780()
	target := grid5nm()
	s0 := lerpZeroOutside(src, daylightS0, target)
	s1 := lerpZeroOutside(src, daylightS1, target)
	s2 := lerpZeroOutside(src, daylightS2, target)

	out := make([]float64, gridN)
	for i := range out {
		v := s0[i] + m1*s1[i] + m2*s2[i]
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

func sq(x float64) float64   { return x * x }
func cube(x float64) float64 { return x * x * x }
