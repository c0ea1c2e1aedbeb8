/*
NAME
  tm30_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package tm30

import (
	"math"
	"testing"

	"github.com/xrite/colormunki-core/spectrum"
)

func flatEmissiveSpectrum(t *testing.T) spectrum.Spectrum {
	t.Helper()
	wl := spectrum.ExtendedGrid41()
	vals := make([]float64, len(wl))
	for i := range vals {
		vals[i] = 1.0
	}
	s, err := spectrum.New(wl, vals, spectrum.Emissive)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	return s
}

func TestCalculateRejectsNonEmissive(t *testing.T) {
	wl := spectrum.ExtendedGrid41()
	vals := make([]float64, len(wl))
	s, err := spectrum.New(wl, vals, spectrum.Reflective)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	if _, err := Calculate(s); err == nil {
		t.Fatal("Calculate did not reject a reflective spectrum")
	}
}

func TestCalculateFlatSpectrumProducesPlausibleMetrics(t *testing.T) {
	s := flatEmissiveSpectrum(t)
	m, err := Calculate(s)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.Rf <= 0 || m.Rf > 110 {
		t.Errorf("Rf = %v, want a plausible range", m.Rf)
	}
	if m.Rg <= 0 {
		t.Errorf("Rg = %v, want > 0", m.Rg)
	}
	if math.IsNaN(m.CCT) || m.CCT <= 0 {
		t.Errorf("CCT = %v, want a positive finite value", m.CCT)
	}
}

func TestCalculateReferenceHueBinsNotAllEmpty(t *testing.T) {
	s := flatEmissiveSpectrum(t)
	m, err := Calculate(s)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	total := 0.0
	for i := 0; i < hueBins; i++ {
		total += math.Hypot(m.BinRefA[i], m.BinRefB[i])
	}
	if total == 0 {
		t.Error("all reference hue bins are empty")
	}
}

func TestReferenceSPDBlendsAtTransition(t *testing.T) {
	below := referenceSPD(3999)
	above := referenceSPD(5001)
	mid := referenceSPD(4500)
	if len(below) != gridN || len(above) != gridN || len(mid) != gridN {
		t.Fatalf("unexpected reference SPD length")
	}
	planck := planckianSPD(4500)
	day := daylightSPD(4500)
	for i := range mid {
		want := 0.5*planck[i] + 0.5*day[i]
		if math.Abs(mid[i]-want) > 1e-12*math.Abs(want) {
			t.Errorf("referenceSPD(4500)[%d] = %v, want the half-and-half blend %v", i, mid[i], want)
		}
	}
}

func TestRfFromDeltaEIsMonotonicDecreasing(t *testing.T) {
	a := rfFromDeltaE(0)
	b := rfFromDeltaE(5)
	c := rfFromDeltaE(20)
	if !(a > b && b > c) {
		t.Errorf("Rf not monotonically decreasing in avgDE: %v %v %v", a, b, c)
	}
	if math.Abs(a-100) > 1e-9 {
		t.Errorf("Rf(0) = %v, want 100", a)
	}
}

func TestPolygonAreaOfRegularPolygon(t *testing.T) {
	var a, b [hueBins]float64
	for i := 0; i < hueBins; i++ {
		theta := 2 * math.Pi * float64(i) / hueBins
		a[i] = math.Cos(theta)
		b[i] = math.Sin(theta)
	}
	area := polygonArea(a, b)
	if area <= 0 {
		t.Errorf("area = %v, want > 0", area)
	}
}
