/*
NAME
  ciecam02_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package cam02

import (
	"math"
	"testing"

	"github.com/xrite/colormunki-core/colorimetry"
)

func defaultState() State {
	vc := ViewingConditions{
		La:         100.0 / math.Pi,
		Yb:         20.0,
		WhitePoint: colorimetry.XYZ{X: 95.047, Y: 100, Z: 108.883},
		Surround:   Average,
	}
	return NewState(vc)
}

func TestForwardInverseRoundTrip(t *testing.T) {
	s := defaultState()
	samples := []colorimetry.XYZ{
		{X: 95.047, Y: 100, Z: 108.883},
		{X: 50, Y: 50, Z: 50},
		{X: 20, Y: 10, Z: 5},
		{X: 10, Y: 40, Z: 70},
		{X: 60, Y: 30, Z: 80},
	}
	for _, xyz := range samples {
		ucs := s.ToUCS(xyz)
		back := s.ToUCS(s.FromUCS(ucs))
		if d := ucs.Distance(back); d > 1e-2 {
			t.Errorf("xyz=%+v: round trip UCS mismatch, got %+v want %+v (dist %v)", xyz, back, ucs, d)
		}
	}
}

func TestAchromaticWhiteHasZeroChroma(t *testing.T) {
	s := defaultState()
	ucs := s.ToUCS(colorimetry.XYZ{X: 95.047, Y: 100, Z: 108.883})
	if math.Hypot(ucs.APrime, ucs.BPrime) > 1e-2 {
		t.Errorf("white point a'=%v b'=%v, want near 0", ucs.APrime, ucs.BPrime)
	}
	if math.Abs(ucs.JPrime-100) > 1 {
		t.Errorf("white point J'=%v, want near 100", ucs.JPrime)
	}
}

func TestClipToGamutPreservesInGamut(t *testing.T) {
	u := UCS{JPrime: 50, APrime: 10, BPrime: -5}
	always := func(j, a, b float64) bool { return true }
	got := u.ClipToGamut(always)
	if got != u {
		t.Errorf("ClipToGamut modified an already in-gamut point: got %+v want %+v", got, u)
	}
}

func TestClipToGamutShrinksChroma(t *testing.T) {
	u := UCS{JPrime: 50, APrime: 100, BPrime: 0}
	limit := 30.0
	inGamut := func(j, a, b float64) bool {
		return math.Hypot(a, b) <= limit
	}
	got := u.ClipToGamut(inGamut)
	if got.JPrime != u.JPrime {
		t.Errorf("J' changed: got %v want %v", got.JPrime, u.JPrime)
	}
	c := math.Hypot(got.APrime, got.BPrime)
	if c > limit+1e-6 {
		t.Errorf("clipped chroma %v exceeds limit %v", c, limit)
	}
	if c < limit-0.2 {
		t.Errorf("clipped chroma %v too conservative, want near %v", c, limit)
	}
}

func TestHueWrapsToPositive(t *testing.T) {
	u := UCS{JPrime: 50, APrime: -1, BPrime: -1}
	h := u.Hue()
	if h < 0 || h >= 360 {
		t.Errorf("Hue() = %v, want [0,360)", h)
	}
}

func TestSurroundPresets(t *testing.T) {
	if Average.F != 1.0 || Average.C != 0.69 || Average.Nc != 1.0 {
		t.Errorf("Average = %+v", Average)
	}
	if Dim.F != 0.9 || Dim.C != 0.59 || Dim.Nc != 0.9 {
		t.Errorf("Dim = %+v", Dim)
	}
	if Dark.F != 0.8 || Dark.C != 0.525 || Dark.Nc != 0.8 {
		t.Errorf("Dark = %+v", Dark)
	}
}
