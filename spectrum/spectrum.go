/*
NAME
  spectrum.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package spectrum provides the Spectrum value type shared by the
// radiometric pipeline and the colorimetry core, along with Sprague cubic
// resampling between wavelength grids.
package spectrum

import "fmt"

// Mode identifies what a Spectrum's values represent.
type Mode int

const (
	// Reflective values are a reflectance factor, roughly in [0, 1.2].
	Reflective Mode = iota
	// Emissive values are radiometric (e.g. spectral radiance) in device units.
	Emissive
	// Ambient values are radiometric, cosine-corrected illuminance-like units.
	Ambient
)

func (m Mode) String() string {
	switch m {
	case Reflective:
		return "reflective"
	case Emissive:
		return "emissive"
	case Ambient:
		return "ambient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Spectrum is an immutable, ordered set of (wavelength, value) samples plus
// the measurement mode they were produced under.
type Spectrum struct {
	wavelengths []float64
	values      []float64
	mode        Mode
}

// New constructs a Spectrum, validating that wavelengths and values have
// equal, nonzero length and that wavelengths are strictly increasing.
func New(wavelengths, values []float64, mode Mode) (Spectrum, error) {
	if len(wavelengths) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: empty wavelength grid")
	}
	if len(wavelengths) != len(values) {
		return Spectrum{}, fmt.Errorf("spectrum: %d wavelengths but %d values", len(wavelengths), len(values))
	}
	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return Spectrum{}, fmt.Errorf("spectrum: wavelengths not strictly increasing at index %d (%v <= %v)", i, wavelengths[i], wavelengths[i-1])
		}
	}
	w := make([]float64, len(wavelengths))
	v := make([]float64, len(values))
	copy(w, wavelengths)
	copy(v, values)
	return Spectrum{wavelengths: w, values: v, mode: mode}, nil
}

// Wavelengths returns a copy of the spectrum's wavelength grid, in nm.
func (s Spectrum) Wavelengths() []float64 {
	out := make([]float64, len(s.wavelengths))
	copy(out, s.wavelengths)
	return out
}

// Values returns a copy of the spectrum's sample values.
func (s Spectrum) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Mode returns the spectrum's measurement mode.
func (s Spectrum) Mode() Mode { return s.mode }

// Len returns the number of bands in the spectrum.
func (s Spectrum) Len() int { return len(s.wavelengths) }

// At returns the wavelength and value of band i.
func (s Spectrum) At(i int) (wavelength, value float64) {
	return s.wavelengths[i], s.values[i]
}

// ValueAt linearly interpolates the spectrum's value at an arbitrary
// wavelength, clamping to the edge values outside the domain. Used for
// quick lookups where full Sprague resampling isn't warranted.
func (s Spectrum) ValueAt(wavelength float64) float64 {
	n := len(s.wavelengths)
	if wavelength <= s.wavelengths[0] {
		return s.values[0]
	}
	if wavelength >= s.wavelengths[n-1] {
		return s.values[n-1]
	}
	for i := 1; i < n; i++ {
		if wavelength <= s.wavelengths[i] {
			x0, x1 := s.wavelengths[i-1], s.wavelengths[i]
			y0, y1 := s.values[i-1], s.values[i]
			t := (wavelength - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return s.values[n-1]
}

// CanonicalGrid36 is the native 380-730nm @ 10nm, 36-band instrument grid.
func CanonicalGrid36() []float64 { return grid(380, 10, 36) }

// ExtendedGrid41 is the 380-780nm @ 10nm, 41-band grid used internally for
// emissive tristimulus integration.
func ExtendedGrid41() []float64 { return grid(380, 10, 41) }

// TM30Grid95 is the 360-830nm @ 5nm, 95-band grid TM-30-18 requires.
func TM30Grid95() []float64 { return grid(360, 5, 95) }

func grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
