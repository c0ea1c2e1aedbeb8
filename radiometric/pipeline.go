/*
NAME
  pipeline.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package radiometric converts raw 137-sample sensor frames into 36-band
// spectral reflectance or radiance, per the dark-subtract, polynomial
// linearize, sparse-matrix reconstruction, and mode-scaling pipeline.
package radiometric

import (
	"github.com/pkg/errors"

	"github.com/xrite/colormunki-core/eeprom"
	"github.com/xrite/colormunki-core/spectrum"
)

// FrameSamples is the number of raw 16-bit samples in one acquisition.
const FrameSamples = 137

// PreRollSamples are discarded dark/guard cells at the start of each frame.
const PreRollSamples = 6

// DetectorBands is the number of usable detector samples: indices
// [PreRollSamples, PreRollSamples+DetectorBands) of the raw frame. The 3
// trailing samples beyond index 134 are guard cells, dropped along with
// the 6 leading pre-roll samples.
const DetectorBands = 128

// numBands is the number of reconstructed spectral bands.
const numBands = 36

// ErrWhiteScaleMissing is returned by Run when a Reflective measurement is
// requested without a white-calibration scale factor.
var ErrWhiteScaleMissing = errors.New("radiometric: reflective measurement requires a white calibration scale")

// Input bundles one raw acquisition with the settings it was taken under.
type Input struct {
	Frame      [FrameSamples]uint16
	Mode       spectrum.Mode
	HighGain   bool
	IntTimeSec float64

	// DarkRef is the optional per-sample dark reference (137 samples);
	// when nil, no dark subtraction is performed.
	DarkRef *[FrameSamples]uint16

	// WhiteScale is the per-band reflective calibration scale; required
	// when Mode is Reflective.
	WhiteScale *[numBands]float64
}

// Run executes the full radiometric pipeline against a decoded calibration
// profile, producing a 36-band Spectrum.
func Run(profile eeprom.CalibrationProfile, in Input) (spectrum.Spectrum, error) {
	if in.Mode == spectrum.Reflective && in.WhiteScale == nil {
		return spectrum.Spectrum{}, ErrWhiteScaleMissing
	}
	if in.IntTimeSec <= 0 {
		return spectrum.Spectrum{}, errors.Errorf("radiometric: non-positive integration time %v", in.IntTimeSec)
	}

	darkSubtracted := dropPreRollAndSubtract(in.Frame, in.DarkRef)
	linearized := linearize(darkSubtracted, polynomialFor(profile, in.HighGain), in.IntTimeSec)

	matrix := matrixFor(profile, in.Mode)
	bands := make([]float64, numBands)
	for w := 0; w < numBands; w++ {
		bands[w] = matrix.Band(w, linearized)
	}

	if err := scale(bands, profile, in); err != nil {
		return spectrum.Spectrum{}, err
	}

	return spectrum.New(spectrum.CanonicalGrid36(), bands, in.Mode)
}

// Reconstruct runs the dark-subtract/linearize/matrix steps of the pipeline
// (spec.md §4.D steps 1-5) against the reflective matrix, without the
// mode-scaling step. This is the "measured" input to the white-calibration
// step (b): run the pipeline with no white_scale, then derive one from the
// result via ComputeWhiteScale.
func Reconstruct(profile eeprom.CalibrationProfile, in Input) ([numBands]float64, error) {
	if in.IntTimeSec <= 0 {
		return [numBands]float64{}, errors.Errorf("radiometric: non-positive integration time %v", in.IntTimeSec)
	}

	darkSubtracted := dropPreRollAndSubtract(in.Frame, in.DarkRef)
	linearized := linearize(darkSubtracted, polynomialFor(profile, in.HighGain), in.IntTimeSec)

	var bands [numBands]float64
	for w := 0; w < numBands; w++ {
		bands[w] = profile.RMatrix.Band(w, linearized)
	}
	return bands, nil
}

// dropPreRollAndSubtract discards the 6 pre-roll samples and subtracts the
// dark reference (if any), returning 128 detector values in float64.
func dropPreRollAndSubtract(frame [FrameSamples]uint16, dark *[FrameSamples]uint16) []float64 {
	out := make([]float64, DetectorBands)
	for i := 0; i < DetectorBands; i++ {
		v := float64(frame[PreRollSamples+i])
		if dark != nil {
			v -= float64(dark[PreRollSamples+i])
		}
		out[i] = v
	}
	return out
}

// polynomialFor selects the normal- or high-gain linearization polynomial,
// constant-term-first.
func polynomialFor(profile eeprom.CalibrationProfile, highGain bool) [4]float64 {
	if highGain {
		return profile.LinHigh
	}
	return profile.LinNormal
}

// linearize applies Horner's method with the given constant-first
// polynomial to each detector value, then normalizes by integration time.
func linearize(detector []float64, poly [4]float64, intTimeSec float64) []float64 {
	out := make([]float64, len(detector))
	for i, v := range detector {
		lval := ((poly[3]*v+poly[2])*v+poly[1])*v + poly[0]
		out[i] = lval / intTimeSec
	}
	return out
}

func matrixFor(profile eeprom.CalibrationProfile, mode spectrum.Mode) eeprom.Matrix {
	if mode == spectrum.Reflective {
		return profile.RMatrix
	}
	return profile.EMatrix
}

// scale applies the mode-specific per-band scaling in place. Emissive and
// ambient measurements route through the calibration profile's emis_coef/
// amb_coef vectors rather than a device-external constant, resolving
// spec.md §9 open question 2.
func scale(bands []float64, profile eeprom.CalibrationProfile, in Input) error {
	switch in.Mode {
	case spectrum.Reflective:
		for w := range bands {
			bands[w] *= in.WhiteScale[w]
		}
	case spectrum.Ambient:
		for w := range bands {
			bands[w] *= profile.AmbCoef[w]
		}
	case spectrum.Emissive:
		for w := range bands {
			bands[w] *= profile.EmisCoef[w]
		}
	default:
		return errors.Errorf("radiometric: unknown mode %v", in.Mode)
	}
	return nil
}

// ComputeWhiteScale derives a per-band reflective calibration scale from a
// profile's white reference and a lamp-on measurement taken with no
// white scale applied (spec.md §4.D white calibration step (b)).
func ComputeWhiteScale(whiteRef [numBands]float64, measured []float64) [numBands]float64 {
	var out [numBands]float64
	for w := 0; w < numBands; w++ {
		if measured[w] > 1e-6 {
			out[w] = whiteRef[w] / measured[w]
		} else {
			out[w] = 1.0
		}
	}
	return out
}
