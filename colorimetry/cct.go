/*
NAME
  cct.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import "math"

// CCT estimates correlated color temperature from CIE 1931 (x,y)
// chromaticity via McCamy's cubic approximation.
func CCT(x, y float64) float64 {
	n := (x - 0.3320) / (0.1858 - y)
	return 449*n*n*n + 3525*n*n + 6823.3*n + 5524.33
}

// uv1960 converts CIE 1931 (x,y) to CIE 1960 (u,v).
func uv1960(x, y float64) (u, v float64) {
	denom := -2*x + 12*y + 3
	return 4 * x / denom, 6 * y / denom
}

// planckianLocusUV approximates the CIE 1960 (u,v) coordinates of the
// Planckian locus at temperature T kelvin (Krystek 1985 rational
// approximation, valid over roughly 1000-15000K).
func planckianLocusUV(tempK float64) (u, v float64) {
	t := tempK
	t2 := t * t
	u = (0.860117757 + 1.54118254e-4*t + 1.28641212e-7*t2) /
		(1 + 8.42420235e-4*t + 7.08145163e-7*t2)
	v = (0.317398726 + 4.22806245e-5*t + 4.20481691e-8*t2) /
		(1 - 2.89741816e-5*t + 1.61456053e-7*t2)
	return u, v
}

// Duv computes the signed distance, in the CIE 1960 (u,v) plane, from
// chromaticity (x,y) to the Planckian locus at the chromaticity's own CCT.
// Positive values are above the locus, negative below.
func Duv(x, y, cct float64) float64 {
	u, v := uv1960(x, y)
	lu, lv := planckianLocusUV(cct)
	dist := math.Hypot(u-lu, v-lv)
	if v < lv {
		return -dist
	}
	return dist
}
