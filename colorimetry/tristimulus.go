/*
NAME
  tristimulus.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/xrite/colormunki-core/spectrum"
)

// deltaLambda is the wavelength step, in nm, of the common integration grid.
const deltaLambda = 10

// Weights are precomputed ASTM E308-style tristimulus weighting factors for
// one (illuminant, observer) pair on the 41-band 380-780nm grid.
type Weights struct {
	Wx, Wy, Wz []float64
	SumWy      float64
}

// WeightsFor synthesizes tristimulus weights for an arbitrary illuminant and
// observer: w = S·CMF, with SumWy accumulated from the synthesized w_y, per
// spec.md §4.H.
func WeightsFor(ill Illuminant, obs Observer) (Weights, error) {
	cmf := CMFFor(obs)
	n := len(cmf.X)
	if len(ill.SPD) != n {
		return Weights{}, fmt.Errorf("colorimetry: illuminant %q has %d bands, want %d", ill.Name, len(ill.SPD), n)
	}
	wx := make([]float64, n)
	wy := make([]float64, n)
	wz := make([]float64, n)
	for i := 0; i < n; i++ {
		wx[i] = ill.SPD[i] * cmf.X[i]
		wy[i] = ill.SPD[i] * cmf.Y[i]
		wz[i] = ill.SPD[i] * cmf.Z[i]
	}
	return Weights{Wx: wx, Wy: wy, Wz: wz, SumWy: floats.Sum(wy)}, nil
}

// XYZ is a CIE tristimulus triple.
type XYZ struct{ X, Y, Z float64 }

// ReflectiveXYZ integrates a reflectance spectrum against precomputed
// weights, resampling it onto the 41-band grid the weights are defined on
// if necessary. Y is scaled to 100 for a perfect white reflector.
func ReflectiveXYZ(s spectrum.Spectrum, w Weights) (XYZ, error) {
	r, err := align41(s)
	if err != nil {
		return XYZ{}, err
	}
	if w.SumWy == 0 {
		return XYZ{}, fmt.Errorf("colorimetry: zero-sum weights")
	}
	x := 100 / w.SumWy * floats.Dot(r, w.Wx)
	y := 100 / w.SumWy * floats.Dot(r, w.Wy)
	z := 100 / w.SumWy * floats.Dot(r, w.Wz)
	return XYZ{X: x, Y: y, Z: z}, nil
}

// EmissiveXYZ integrates an emissive or ambient spectrum directly against
// an observer's color matching functions, per spec.md §4.H.
func EmissiveXYZ(s spectrum.Spectrum, obs Observer) (XYZ, error) {
	p, err := align41(s)
	if err != nil {
		return XYZ{}, err
	}
	cmf := CMFFor(obs)
	x := deltaLambda * floats.Dot(p, cmf.X)
	y := deltaLambda * floats.Dot(p, cmf.Y)
	z := deltaLambda * floats.Dot(p, cmf.Z)
	return XYZ{X: x, Y: y, Z: z}, nil
}

// align41 resamples s onto the canonical 41-band 380-780nm grid.
func align41(s spectrum.Spectrum) ([]float64, error) {
	target := spectrum.ExtendedGrid41()
	wl := s.Wavelengths()
	if len(wl) == len(target) && wl[0] == target[0] {
		return s.Values(), nil
	}
	resampled, err := spectrum.Resample(s, target)
	if err != nil {
		return nil, err
	}
	return resampled.Values(), nil
}

// WhitePointFor returns the tristimulus white point (a perfect reflecting
// diffuser under the given weights), Y normalized to 100.
func WhitePointFor(w Weights) (XYZ, error) {
	if w.SumWy == 0 {
		return XYZ{}, fmt.Errorf("colorimetry: zero-sum weights")
	}
	return XYZ{
		X: 100 / w.SumWy * floats.Sum(w.Wx),
		Y: 100,
		Z: 100 / w.SumWy * floats.Sum(w.Wz),
	}, nil
}

// Chromaticity converts XYZ to CIE 1931 (x,y) chromaticity coordinates,
// defaulting to the D65 white point when X+Y+Z is negligible.
func Chromaticity(c XYZ) (x, y float64) {
	sum := c.X + c.Y + c.Z
	if sum < 1e-6 {
		return 0.3127, 0.3290
	}
	return c.X / sum, c.Y / sum
}
