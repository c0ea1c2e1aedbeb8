/*
NAME
  data.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package tm30

import "github.com/xrite/colormunki-core/colorimetry"

// grid5nm is the TM-30 working grid: 360-830nm in 5nm steps, 95 points.
const (
	gridStart = 360.0
	gridStep  = 5.0
	gridN     = 95
)

func grid5nm() []float64 {
	out := make([]float64, gridN)
	for i := range out {
		out[i] = gridStart + float64(i)*gridStep
	}
	return out
}

// lerpZeroOutside linearly interpolates a tabulated function onto target
// wavelengths, returning 0 outside the table's domain (per spec.md §4.L's
// "extrapolated as zero outside" rule for the daylight basis functions).
func lerpZeroOutside(srcW, srcV, targetW []float64) []float64 {
	out := make([]float64, len(targetW))
	for i, w := range targetW {
		out[i] = lerpZeroOutsideAt(srcW, srcV, w)
	}
	return out
}

func lerpZeroOutsideAt(srcW, srcV []float64, w float64) float64 {
	if w < srcW[0] || w > srcW[len(srcW)-1] {
		return 0
	}
	for i := 0; i < len(srcW)-1; i++ {
		if w >= srcW[i] && w <= srcW[i+1] {
			t := (w - srcW[i]) / (srcW[i+1] - srcW[i])
			return srcV[i] + t*(srcV[i+1]-srcV[i])
		}
	}
	return srcV[len(srcV)-1]
}

// cmfGrid10nm380to780 are the CIE 1931/1964 observer wavelengths shared by
// colorimetry's tables.
func cmfGrid10nm380to780() []float64 {
	w := make([]float64, 41)
	for i := range w {
		w[i] = 380 + float64(i)*10
	}
	return w
}

// cmf10deg5nm returns the CIE 1964 10-degree observer's X,Y,Z resampled
// onto the TM-30 5nm grid, zero outside the tabulated 380-780nm domain.
func cmf10deg5nm() (x, y, z []float64) {
	cmf := colorimetry.CMFFor(colorimetry.Observer10Deg)
	src := cmfGrid10nm380to780()
	target := grid5nm()
	return lerpZeroOutside(src, cmf.X, target),
		lerpZeroOutside(src, cmf.Y, target),
		lerpZeroOutside(src, cmf.Z, target)
}

// daylightS0, daylightS1, daylightS2 are the CIE daylight basis functions,
// tabulated 380-780nm @ 10nm (41 points), per CIE 15:2004 Table T.3.
// Values grounded on original_source/crates/spectro-core/src/tm30.rs's
// generate_daylight_5nm, which carries the literal table.
var (
	daylightS0 = []float64{
		0.0, 0.0, 33.4, 37.4, 117.4, 117.8, 114.9, 115.9, 108.8, 109.3, 107.8, 104.8, 107.7, 104.4,
		104.0, 100.0, 96.0, 95.1, 89.1, 90.5, 90.3, 88.4, 84.0, 85.1, 81.9, 82.6, 84.9, 81.3, 71.9,
		74.3, 76.4, 63.3, 71.7, 77.0, 65.2, 47.7, 68.6, 65.0, 66.0, 61.0, 53.3,
	}
	daylightS1 = []float64{
		0.0, 0.0, -1.1, -0.5, -0.7, -1.2, -2.6, -2.9, -2.8, -4.5, -6.1, -7.6, -9.7, -11.7, -12.2,
		-13.6, -12.0, -13.3, -12.9, -10.6, -11.6, -10.8, -8.1, -10.3, -11.0, -11.5, -10.8, -10.9,
		-8.8, -7.3, -12.9, -15.8, -15.1, -12.2, -10.2, -8.6, -12.0, -14.6, -15.1, -14.9, -13.7,
	}
	daylightS2 = []float64{
		0.0, 0.0, -2.1, -1.9, -1.1, -2.2, -3.5, -3.5, -3.3, -2.0, -1.2, -1.1, -0.5, 0.2, 0.5, 2.1,
		3.2, 4.1, 4.7, 5.1, 6.7, 7.3, 8.6, 9.8, 10.2, 14.9, 18.1, 15.9, 16.8, 24.2, 31.7, 15.3,
		18.9, 21.2, 15.6, 8.3, 18.9, 14.6, 15.5, 15.4, 14.6,
	}
)
