/*
NAME
  sprague.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package spectrum

import "math"

// gridTolerance is the maximum deviation from uniform spacing, in nm,
// tolerated; if any source step deviates by more, every evaluation point
// is computed by linear interpolation instead.
const gridTolerance = 1e-3

// Sprague resamples (srcWavelengths, srcValues) — which must be strictly
// increasing and, to within gridTolerance, uniformly spaced — onto
// targetWavelengths using Sprague's six-point interpolation formula (a
// fifth-degree polynomial in the fractional position).
// With fewer than four source points it falls back to linear interpolation.
// Evaluation points outside the source domain are clamped to the nearest
// edge value.
func Sprague(srcWavelengths, srcValues, targetWavelengths []float64) ([]float64, error) {
	n := len(srcWavelengths)
	if n == 0 || n != len(srcValues) {
		return nil, errLenMismatch(n, len(srcValues))
	}
	out := make([]float64, len(targetWavelengths))

	if n < 4 {
		for i, w := range targetWavelengths {
			out[i] = linearAt(srcWavelengths, srcValues, w)
		}
		return out, nil
	}

	h := srcWavelengths[1] - srcWavelengths[0]
	uniform := true
	for i := 1; i < n; i++ {
		step := srcWavelengths[i] - srcWavelengths[i-1]
		if math.Abs(step-h) > gridTolerance {
			uniform = false
			break
		}
	}
	if !uniform {
		for i, w := range targetWavelengths {
			out[i] = linearAt(srcWavelengths, srcValues, w)
		}
		return out, nil
	}

	w0 := srcWavelengths[0]
	wLast := srcWavelengths[n-1]
	at := func(idx int) float64 {
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		return srcValues[idx]
	}

	for i, w := range targetWavelengths {
		switch {
		case w <= w0:
			out[i] = srcValues[0]
			continue
		case w >= wLast:
			out[i] = srcValues[n-1]
			continue
		}
		p := (w - w0) / h
		idx := int(math.Floor(p))
		x := p - float64(idx)

		y0 := at(idx - 2)
		y1 := at(idx - 1)
		y2 := at(idx)
		y3 := at(idx + 1)
		y4 := at(idx + 2)
		y5 := at(idx + 3)

		out[i] = spragueEval(y0, y1, y2, y3, y4, y5, x)
	}
	return out, nil
}

// spragueEval evaluates the Sprague quintic on the six equi-spaced samples
// y0..y5 (centred so that y2 is at x=0 and y3 is at x=1) at fractional
// position x in [0,1].
func spragueEval(y0, y1, y2, y3, y4, y5, x float64) float64 {
	a0 := y2
	a1 := (2*y0 - 16*y1 + 16*y3 - 2*y4) / 24
	a2 := (-y0 + 16*y1 - 30*y2 + 16*y3 - y4) / 24
	a3 := (-9*y0 + 39*y1 - 70*y2 + 66*y3 - 33*y4 + 7*y5) / 120
	a4 := (13*y0 - 64*y1 + 126*y2 - 124*y3 + 61*y4 - 12*y5) / 120
	a5 := (-5*y0 + 25*y1 - 50*y2 + 50*y3 - 25*y4 + 5*y5) / 120

	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x
	x5 := x4 * x
	return a0 + a1*x + a2*x2 + a3*x3 + a4*x4 + a5*x5
}

// linearAt linearly interpolates y(x) over (xs, ys), clamping outside the
// domain. xs need not be uniformly spaced.
func linearAt(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	for i := 1; i < n; i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[n-1]
}

func errLenMismatch(a, b int) error {
	return &lenMismatchError{a, b}
}

type lenMismatchError struct{ wavelengths, values int }

func (e *lenMismatchError) Error() string {
	return "spectrum: mismatched or empty source arrays for resampling"
}

// Resample resamples src onto targetWavelengths via Sprague interpolation,
// preserving src's Mode.
func Resample(src Spectrum, targetWavelengths []float64) (Spectrum, error) {
	vals, err := Sprague(src.wavelengths, src.values, targetWavelengths)
	if err != nil {
		return Spectrum{}, err
	}
	return New(targetWavelengths, vals, src.mode)
}
