/*
NAME
  tm30.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package tm30 implements the IES TM-30-18 color-quality evaluation
// metrics (Rf, Rg, and the 16-bin hue analysis) over 99 color evaluation
// samples under an emissive test spectrum.
package tm30

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/xrite/colormunki-core/cam02"
	"github.com/xrite/colormunki-core/colorimetry"
	"github.com/xrite/colormunki-core/spectrum"
)

const hueBins = 16

// Metrics is the full TM-30-18 result for one test spectrum.
type Metrics struct {
	Rf  float64
	Rg  float64
	CCT float64
	Duv float64

	// ChromaShiftRMS and HueShiftRMS summarize BinChromaShift/BinHueShift
	// across populated hue bins as a single root-mean-square figure.
	ChromaShiftRMS float64
	HueShiftRMS    float64

	BinRf          [hueBins]float64
	BinChromaShift [hueBins]float64
	BinHueShift    [hueBins]float64
	BinTestA       [hueBins]float64
	BinTestB       [hueBins]float64
	BinRefA        [hueBins]float64
	BinRefB        [hueBins]float64

	// PreviewRGB holds an sRGB preview triple (0-255) per CES sample under
	// the test source, normalized to the test white point via Bradford
	// adaptation when the test white differs from D65.
	PreviewRGB [cesCount][3]uint8
}

// Calculate runs the full TM-30-18 pipeline on an emissive test spectrum.
func Calculate(test spectrum.Spectrum) (Metrics, error) {
	if test.Mode() != spectrum.Emissive {
		return Metrics{}, fmt.Errorf("tm30: test spectrum must be emissive, got %s", test.Mode())
	}

	test5, err := spectrum.Resample(test, grid5nm())
	if err != nil {
		return Metrics{}, fmt.Errorf("tm30: resample test spectrum: %w", err)
	}
	testVals := test5.Values()

	xyzForCCT, err := colorimetry.EmissiveXYZ(test, colorimetry.Observer2Deg)
	if err != nil {
		return Metrics{}, fmt.Errorf("tm30: CCT XYZ: %w", err)
	}
	cx, cy := colorimetry.Chromaticity(xyzForCCT)
	cct := colorimetry.CCT(cx, cy)
	duv := colorimetry.Duv(cx, cy, cct)

	refVals := referenceSPD(cct)

	xBar, yBar, zBar := cmf10deg5nm()

	testWhiteRaw := integrateXYZ(testVals, testVals, xBar, yBar, zBar)
	refWhiteRaw := integrateXYZ(refVals, refVals, xBar, yBar, zBar)

	testWhite := colorimetry.XYZ{
		X: testWhiteRaw.X * 100 / testWhiteRaw.Y,
		Y: 100,
		Z: testWhiteRaw.Z * 100 / testWhiteRaw.Y,
	}
	refWhite := colorimetry.XYZ{
		X: refWhiteRaw.X * 100 / refWhiteRaw.Y,
		Y: 100,
		Z: refWhiteRaw.Z * 100 / refWhiteRaw.Y,
	}

	camTest := cam02.NewState(cam02.ViewingConditions{La: 100, Yb: 20, WhitePoint: testWhite, Surround: cam02.Average})
	camRef := cam02.NewState(cam02.ViewingConditions{La: 100, Yb: 20, WhitePoint: refWhite, Surround: cam02.Average})

	ces := cesReflectances()

	testUCS := make([]cam02.UCS, cesCount)
	refUCS := make([]cam02.UCS, cesCount)
	var m Metrics

	for j := 0; j < cesCount; j++ {
		sampleTest := make([]float64, gridN)
		sampleRef := make([]float64, gridN)
		for i := 0; i < gridN; i++ {
			sampleTest[i] = testVals[i] * ces[j][i]
			sampleRef[i] = refVals[i] * ces[j][i]
		}

		testXYZRaw := integrateXYZ(sampleTest, testVals, xBar, yBar, zBar)
		testXYZ := colorimetry.XYZ{
			X: testXYZRaw.X * 100 / testWhiteRaw.Y,
			Y: testXYZRaw.Y * 100 / testWhiteRaw.Y,
			Z: testXYZRaw.Z * 100 / testWhiteRaw.Y,
		}
		refXYZRaw := integrateXYZ(sampleRef, refVals, xBar, yBar, zBar)
		refXYZ := colorimetry.XYZ{
			X: refXYZRaw.X * 100 / refWhiteRaw.Y,
			Y: refXYZRaw.Y * 100 / refWhiteRaw.Y,
			Z: refXYZRaw.Z * 100 / refWhiteRaw.Y,
		}

		testUCS[j] = camTest.ToUCS(testXYZ)
		refUCS[j] = camRef.ToUCS(refXYZ)
		m.PreviewRGB[j] = previewSRGB(testXYZ, testWhite)
	}

	deltaEs := make([]float64, cesCount)
	for j := 0; j < cesCount; j++ {
		deltaEs[j] = testUCS[j].Distance(refUCS[j])
	}
	avgDE := stat.Mean(deltaEs, nil)
	m.Rf = rfFromDeltaE(avgDE)
	m.CCT = cct
	m.Duv = duv

	var binCount [hueBins]int
	var binDESum [hueBins]float64
	for j := 0; j < cesCount; j++ {
		h := refUCS[j].Hue()
		bin := int(math.Floor(h/22.5)) % hueBins
		if bin < 0 {
			bin += hueBins
		}
		m.BinTestA[bin] += testUCS[j].APrime
		m.BinTestB[bin] += testUCS[j].BPrime
		m.BinRefA[bin] += refUCS[j].APrime
		m.BinRefB[bin] += refUCS[j].BPrime
		binCount[bin]++
		binDESum[bin] += testUCS[j].Distance(refUCS[j])
	}

	for i := 0; i < hueBins; i++ {
		if binCount[i] == 0 {
			continue
		}
		n := float64(binCount[i])
		m.BinTestA[i] /= n
		m.BinTestB[i] /= n
		m.BinRefA[i] /= n
		m.BinRefB[i] /= n
		m.BinRf[i] = rfFromDeltaE(binDESum[i] / n)
	}

	areaTest := polygonArea(m.BinTestA, m.BinTestB)
	areaRef := polygonArea(m.BinRefA, m.BinRefB)
	if areaRef > 1e-9 {
		m.Rg = 100 * areaTest / areaRef
	}

	for i := 0; i < hueBins; i++ {
		cTest := math.Hypot(m.BinTestA[i], m.BinTestB[i])
		cRef := math.Hypot(m.BinRefA[i], m.BinRefB[i])
		if cRef > 1e-9 {
			m.BinChromaShift[i] = (cTest - cRef) / cRef
		}
		hTest := math.Atan2(m.BinTestB[i], m.BinTestA[i])
		hRef := math.Atan2(m.BinRefB[i], m.BinRefA[i])
		dh := hTest - hRef
		for dh > math.Pi {
			dh -= 2 * math.Pi
		}
		for dh < -math.Pi {
			dh += 2 * math.Pi
		}
		m.BinHueShift[i] = dh
	}

	m.ChromaShiftRMS = rms(m.BinChromaShift[:], binCount[:])
	m.HueShiftRMS = rms(m.BinHueShift[:], binCount[:])

	return m, nil
}

// rms computes the root-mean-square of values over bins that received at
// least one sample, via gonum/stat's mean-of-squares.
func rms(values []float64, counts []int) float64 {
	squares := make([]float64, 0, len(values))
	for i, v := range values {
		if counts[i] > 0 {
			squares = append(squares, v*v)
		}
	}
	if len(squares) == 0 {
		return 0
	}
	return math.Sqrt(stat.Mean(squares, nil))
}

func rfFromDeltaE(avgDE float64) float64 {
	return 10 * math.Log(math.Exp((100-7.54*avgDE)/10)+1)
}

func polygonArea(a, b [hueBins]float64) float64 {
	area := 0.0
	for i := 0; i < hueBins; i++ {
		j := (i + 1) % hueBins
		area += a[i]*b[j] - a[j]*b[i]
	}
	return math.Abs(area) / 2
}

// integrateXYZ computes Σ sampleVals·CMF scaled by 100/Σ sourceVals·ȳ, per
// spec.md §4.L step 5.
func integrateXYZ(sampleVals, sourceVals, xBar, yBar, zBar []float64) colorimetry.XYZ {
	var x, y, z, sumYSource float64
	for i := range sampleVals {
		x += sampleVals[i] * xBar[i]
		y += sampleVals[i] * yBar[i]
		z += sampleVals[i] * zBar[i]
		sumYSource += sourceVals[i] * yBar[i]
	}
	scale := 100 / sumYSource
	return colorimetry.XYZ{X: x * scale, Y: y * scale, Z: z * scale}
}

// previewSRGB renders a CES sample's test-source XYZ as an 8-bit sRGB
// preview triple, Bradford-adapting to D65 first when the test white
// point differs from it (spec.md §4.L step 10).
func previewSRGB(xyz, testWhite colorimetry.XYZ) [3]uint8 {
	d65 := colorimetry.XYZ{X: 95.047, Y: 100, Z: 108.883}
	adapted := colorimetry.BradfordAdapt(xyz, testWhite, d65)
	r, g, b := xyzToSRGB(adapted)
	return [3]uint8{toByteClamped(r), toByteClamped(g), toByteClamped(b)}
}

func xyzToSRGB(c colorimetry.XYZ) (r, g, b float64) {
	x, y, z := c.X/100, c.Y/100, c.Z/100
	r = x*3.2406 + y*-1.5372 + z*-0.4986
	g = x*-0.9689 + y*1.8758 + z*0.0415
	b = x*0.0557 + y*-0.2040 + z*1.0570
	return gammaEncode(r), gammaEncode(g), gammaEncode(b)
}

func gammaEncode(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func toByteClamped(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
