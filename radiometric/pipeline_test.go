/*
NAME
  pipeline_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package radiometric

import (
	"math"
	"testing"

	"github.com/xrite/colormunki-core/eeprom"
	"github.com/xrite/colormunki-core/spectrum"
)

// identityProfile builds a calibration profile whose matrices are one-hot
// (band w reads detector sample w directly) and whose linearization
// polynomial is the identity, matching spec.md scenario (e).
func identityProfile() eeprom.CalibrationProfile {
	index := make([]uint32, numBands)
	coef := make([]float64, numBands*16)
	for w := 0; w < numBands; w++ {
		index[w] = uint32(w)
		coef[w*16] = 1.0
	}
	mtx := eeprom.Matrix{Index: index, Coef: coef}

	var emisCoef, ambCoef [numBands]float64
	for w := range emisCoef {
		emisCoef[w] = 1.0
		ambCoef[w] = 1.0
	}

	return eeprom.CalibrationProfile{
		RMatrix:   mtx,
		EMatrix:   mtx,
		LinNormal: [4]float64{0, 1, 0, 0},
		LinHigh:   [4]float64{0, 1, 0, 0},
		EmisCoef:  emisCoef,
		AmbCoef:   ambCoef,
	}
}

func TestRunIdentityFrameEmissive(t *testing.T) {
	profile := identityProfile()

	var frame [FrameSamples]uint16
	for i := PreRollSamples; i < PreRollSamples+numBands; i++ {
		frame[i] = 1000
	}

	s, err := Run(profile, Input{
		Frame:      frame,
		Mode:       spectrum.Emissive,
		IntTimeSec: 2.0,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := 1000.0 / 2.0
	for w := 0; w < numBands; w++ {
		_, v := s.At(w)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("band %d = %v, want %v", w, v, want)
		}
	}
}

func TestRunReflectiveRequiresWhiteScale(t *testing.T) {
	profile := identityProfile()
	var frame [FrameSamples]uint16
	_, err := Run(profile, Input{
		Frame:      frame,
		Mode:       spectrum.Reflective,
		IntTimeSec: 1.0,
	})
	if err != ErrWhiteScaleMissing {
		t.Fatalf("err = %v, want ErrWhiteScaleMissing", err)
	}
}

func TestRunReflectiveAppliesWhiteScale(t *testing.T) {
	profile := identityProfile()
	var frame [FrameSamples]uint16
	for i := PreRollSamples; i < PreRollSamples+numBands; i++ {
		frame[i] = 500
	}
	var ws [numBands]float64
	for w := range ws {
		ws[w] = 2.0
	}
	s, err := Run(profile, Input{
		Frame:      frame,
		Mode:       spectrum.Reflective,
		IntTimeSec: 1.0,
		WhiteScale: &ws,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := 500.0 * 2.0
	for w := 0; w < numBands; w++ {
		_, v := s.At(w)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("band %d = %v, want %v", w, v, want)
		}
	}
}

func TestRunDarkSubtraction(t *testing.T) {
	profile := identityProfile()
	var frame, dark [FrameSamples]uint16
	for i := PreRollSamples; i < PreRollSamples+numBands; i++ {
		frame[i] = 1200
		dark[i] = 200
	}
	s, err := Run(profile, Input{
		Frame:      frame,
		Mode:       spectrum.Emissive,
		IntTimeSec: 1.0,
		DarkRef:    &dark,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, v := s.At(0)
	if math.Abs(v-1000) > 1e-9 {
		t.Fatalf("band 0 = %v, want 1000", v)
	}
}

// TestRunSyntheticFrameScenario reproduces spec.md scenario (e): a
// 137-sample frame with indices [6,134) set to 1000 and the rest zero,
// zero dark reference, lin_normal = [0,1,0,0], one-hot 16-coefficient
// reconstruction matrices (rmtx_index[w]=w), no white_scale. Every
// reconstructed band should equal 1000/int_time_sec.
func TestRunSyntheticFrameScenario(t *testing.T) {
	index := make([]uint32, numBands)
	coef := make([]float64, numBands*16)
	for w := 0; w < numBands; w++ {
		index[w] = uint32(w)
		coef[w*16] = 1.0
	}
	mtx := eeprom.Matrix{Index: index, Coef: coef}

	var emisCoef [numBands]float64
	for w := range emisCoef {
		emisCoef[w] = 1.0
	}
	profile := eeprom.CalibrationProfile{
		EMatrix:   mtx,
		LinNormal: [4]float64{0, 1, 0, 0},
		LinHigh:   [4]float64{0, 1, 0, 0},
		EmisCoef:  emisCoef,
	}

	var frame [FrameSamples]uint16
	for i := 6; i < 134; i++ {
		frame[i] = 1000
	}

	const intTime = 2.5
	s, err := Run(profile, Input{
		Frame:      frame,
		Mode:       spectrum.Emissive,
		IntTimeSec: intTime,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := 1000.0 / intTime
	for w := 0; w < numBands; w++ {
		_, v := s.At(w)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("band %d = %v, want %v", w, v, want)
		}
	}
}

func TestReconstructMatchesRunReflectivePreScale(t *testing.T) {
	profile := identityProfile()
	var frame [FrameSamples]uint16
	for i := PreRollSamples; i < PreRollSamples+numBands; i++ {
		frame[i] = 500
	}

	bands, err := Reconstruct(profile, Input{Frame: frame, IntTimeSec: 2.0})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	ws := [numBands]float64{}
	for w := range ws {
		ws[w] = 1.0
	}
	s, err := Run(profile, Input{Frame: frame, Mode: spectrum.Reflective, IntTimeSec: 2.0, WhiteScale: &ws})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for w := 0; w < numBands; w++ {
		_, want := s.At(w)
		if math.Abs(bands[w]-want) > 1e-9 {
			t.Errorf("band %d = %v, want %v (Run with white_scale=1)", w, bands[w], want)
		}
	}
}

func TestComputeWhiteScaleAvoidsDivideByZero(t *testing.T) {
	var whiteRef [numBands]float64
	whiteRef[0] = 90
	measured := make([]float64, numBands)
	measured[0] = 0
	out := ComputeWhiteScale(whiteRef, measured)
	if out[0] != 1.0 {
		t.Errorf("out[0] = %v, want 1.0 fallback", out[0])
	}
}
