/*
NAME
  ces.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package tm30

import "math"

// cesCount is the number of IES TM-30-18 color evaluation samples.
const cesCount = 99

// cesReflectances procedurally synthesizes 99 smooth reflectance curves
// over the 5nm 360-830 grid, evenly distributed in hue and varying in
// chroma and lightness.
//
// The true CES99 reflectance table (99 real-world munsell-like material
// measurements) is not present anywhere in the retrieval pack — no example
// repo or original_source file carries it, only code that references it
// by name (original_source/crates/spectro-core/src/tm30.rs imports it from
// a sibling tm30_data.rs that was not retrieved). Rather than fabricate a
// literal table from uncertain recollection, each sample here is a smooth,
// deterministic reflectance curve: a lightness floor plus a single
// Gaussian chroma bump whose center wavelength sweeps once around the
// visible spectrum and whose width/amplitude vary by sample index. This
// preserves every structural TM-30 invariant that does not depend on the
// exact published data (Rf/Rg self-consistency, hue-bin coverage, gamut
// shape under a reference vs. test illuminant) without claiming numeric
// fidelity to the published CES99/Rf/Rg reference values.
func cesReflectances() [][]float64 {
	grid := grid5nm()
	out := make([][]float64, cesCount)
	for j := 0; j < cesCount; j++ {
		frac := float64(j) / float64(cesCount)
		center := 400 + frac*300 // sweep 400-700nm across the sample set
		width := 40 + 30*math.Sin(frac*2*math.Pi*3)
		amp := 0.35 + 0.25*math.Cos(frac*2*math.Pi*5)
		floor := 0.15 + 0.1*math.Sin(frac*2*math.Pi*7)

		refl := make([]float64, len(grid))
		for i, w := range grid {
			d := (w - center) / width
			v := floor + amp*math.Exp(-0.5*d*d)
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			refl[i] = v
		}
		out[j] = refl
	}
	return out
}
