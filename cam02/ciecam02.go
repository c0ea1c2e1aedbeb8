/*
NAME
  ciecam02.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package cam02 implements the CIECAM02 color appearance model and its
// CAM02-UCS uniform color space, used by the TM-30 engine for perceptual
// color-difference calculations and by the ICC writer's perceptual LUT
// fill.
package cam02

import (
	"math"

	"github.com/xrite/colormunki-core/colorimetry"
)

// Surround holds the three viewing-surround parameters.
type Surround struct {
	F, C, Nc float64
}

// Surround presets per CIECAM02.
var (
	Average = Surround{F: 1.0, C: 0.69, Nc: 1.0}
	Dim     = Surround{F: 0.9, C: 0.59, Nc: 0.9}
	Dark    = Surround{F: 0.8, C: 0.525, Nc: 0.8}
)

// ViewingConditions are the inputs to a CIECAM02 model instance.
type ViewingConditions struct {
	La         float64 // adapting luminance, cd/m^2
	Yb         float64 // relative background luminance
	WhitePoint colorimetry.XYZ
	Surround   Surround
}

// UCS is a CAM02-UCS coordinate triple.
type UCS struct {
	JPrime, APrime, BPrime float64
}

// Distance returns the CAM02-UCS Euclidean color difference.
func (u UCS) Distance(o UCS) float64 {
	dj := u.JPrime - o.JPrime
	da := u.APrime - o.APrime
	db := u.BPrime - o.BPrime
	return math.Sqrt(dj*dj + da*da + db*db)
}

// Hue returns the CAM02-UCS hue angle in degrees, [0,360).
func (u UCS) Hue() float64 {
	h := rad2deg(math.Atan2(u.BPrime, u.APrime))
	if h < 0 {
		h += 360
	}
	return h
}

// ClipToGamut performs the spec's bounded bisection gamut clip: given a
// predicate, it returns the point with the same lightness and hue but the
// largest in-gamut chroma scale along the line to the neutral axis.
func (u UCS) ClipToGamut(inGamut func(j, a, b float64) bool) UCS {
	if inGamut(u.JPrime, u.APrime, u.BPrime) {
		return u
	}

	low, high := 0.0, 1.0
	var bestA, bestB float64
	for i := 0; i < 10; i++ {
		mid := (low + high) / 2
		testA := u.APrime * mid
		testB := u.BPrime * mid
		if inGamut(u.JPrime, testA, testB) {
			bestA, bestB = testA, testB
			low = mid
		} else {
			high = mid
		}
	}
	return UCS{JPrime: u.JPrime, APrime: bestA, BPrime: bestB}
}

// State is the immutable set of constants {F_L, n, N_bb, N_cb, z, RGB_w, D,
// A_w} derived from a ViewingConditions, precomputed once per viewing
// condition and shared read-only across measurements.
type State struct {
	vc ViewingConditions

	c, nc float64
	fl    float64
	nbb   float64
	ncb   float64
	z     float64
	rgbW  [3]float64
	d     float64
	aw    float64
}

// catM is the CAT02 XYZ->LMS matrix.
var catM = [3][3]float64{
	{0.7328, 0.4296, -0.1624},
	{-0.7036, 1.6975, 0.0061},
	{0.0030, 0.0136, 0.9834},
}

// catMInvHPE is M_CAT02^-1 * M_HPE, composed once (teacher-style fixed
// matrix constant rather than a runtime matrix inverse).
var catMInvHPE = [3][3]float64{
	{0.7409792, 0.2180250, 0.0410000},
	{0.2853532, 0.6242014, 0.0904454},
	{-0.0096280, -0.0056980, 1.0153260},
}

func matVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// NewState precomputes a Cam02State for the given viewing conditions.
func NewState(vc ViewingConditions) State {
	s := State{vc: vc, c: vc.Surround.C, nc: vc.Surround.Nc}

	k := 1.0 / (5*vc.La + 1)
	k4 := k * k * k * k
	s.fl = 0.2*k4*(5*vc.La) + 0.1*(1-k4)*(1-k4)*math.Cbrt(5*vc.La)

	n := vc.Yb / vc.WhitePoint.Y
	s.nbb = 0.725 * math.Pow(1/n, 0.2)
	s.ncb = s.nbb
	s.z = 1.48 + math.Sqrt(n)

	wp := [3]float64{vc.WhitePoint.X, vc.WhitePoint.Y, vc.WhitePoint.Z}
	s.rgbW = matVec(catM, wp)

	s.d = clamp01(vc.Surround.F * (1 - (1.0/3.6)*math.Exp((-vc.La-42)/92)))

	rgbWc := s.adaptWhite()
	rgbWp := matVec(catMInvHPE, rgbWc)
	rgbWa := s.compress(rgbWp)
	s.aw = (2*rgbWa[0] + rgbWa[1] + 0.05*rgbWa[2] - 0.305) * s.nbb

	return s
}

// adaptWhite applies the per-channel chromatic-adaptation factor to the
// white point's own CAT02 LMS, since RGB_w is adapted against itself.
func (s State) adaptWhite() [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		factor := s.d*(100.0/s.rgbW[i]) + 1 - s.d
		out[i] = s.rgbW[i] * factor
	}
	return out
}

func (s State) adapt(rgb [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		factor := s.d*(100.0/s.rgbW[i]) + 1 - s.d
		out[i] = rgb[i] * factor
	}
	return out
}

func (s State) compress(rgbP [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		val := math.Pow(s.fl*math.Abs(rgbP[i])/100.0, 0.42)
		a := (400.0 * val) / (val + 27.13)
		if rgbP[i] < 0 {
			a = -a
		}
		out[i] = a + 0.1
	}
	return out
}

// ToUCS transforms an XYZ color into CAM02-UCS under this State's viewing
// conditions.
func (s State) ToUCS(xyz colorimetry.XYZ) UCS {
	a, _ := s.forward(xyz)
	return a.toUCS(s.fl)
}

// forward runs the CIECAM02 forward pipeline through the appearance
// correlates and also returns the raw (a,b) opponent pair needed by hue.
func (s State) forward(xyz colorimetry.XYZ) (ucsAppearance, [2]float64) {
	rgb := matVec(catM, [3]float64{xyz.X, xyz.Y, xyz.Z})
	rgbC := s.adapt(rgb)
	rgbP := matVec(catMInvHPE, rgbC)
	rgbA := s.compress(rgbP)

	a := rgbA[0] - 12.0*rgbA[1]/11.0 + rgbA[2]/11.0
	b := (1.0 / 9.0) * (rgbA[0] + rgbA[1] - 2*rgbA[2])
	hRad := math.Atan2(b, a)

	et := 0.25 * (math.Cos(hRad+2) + 3.8)
	ac := (2*rgbA[0] + rgbA[1] + 0.05*rgbA[2] - 0.305) * s.nbb

	j := 100 * math.Pow(ac/s.aw, s.c*s.z)
	if j < 0 {
		j = 0
	}
	if j > 100 {
		j = 100
	}

	t := (50000.0/13.0) * s.nc * s.ncb * et * math.Hypot(a, b) / (rgbA[0] + rgbA[1] + 1.05*rgbA[2])
	chroma := math.Pow(t, 0.9) * math.Sqrt(j/100) * math.Pow(1.64-math.Pow(0.29, s.nbb), 0.73)

	hDeg := rad2deg(hRad)
	if hDeg < 0 {
		hDeg += 360
	}

	return ucsAppearance{j: j, c: chroma, h: hDeg}, [2]float64{a, b}
}

// ucsAppearance is the J, C, h triple prior to UCS scaling.
type ucsAppearance struct {
	j, c, h float64
}

const (
	ucsKl = 1.00
	ucsC1 = 0.007
	ucsC2 = 0.0228
)

func (a ucsAppearance) toUCS(fl float64) UCS {
	m := a.c * math.Pow(fl, 0.25)
	jPrime := ((1 + 100*ucsC1) * a.j) / (1 + ucsC1*a.j) / ucsKl
	mPrime := (1.0 / ucsC2) * math.Log(1+ucsC2*m)
	hRad := deg2rad(a.h)
	return UCS{
		JPrime: jPrime,
		APrime: mPrime * math.Cos(hRad),
		BPrime: mPrime * math.Sin(hRad),
	}
}

// FromUCS inverts CAM02-UCS back to XYZ under this State's viewing
// conditions: undo the UCS log-compression to recover J, M, h; undo
// response compression, the opponent decomposition, chromatic adaptation,
// and the CAT02 transform to recover XYZ. Used by ICC LUT synthesis.
func (s State) FromUCS(u UCS) colorimetry.XYZ {
	j := (u.JPrime * ucsKl) / (1 + ucsC1*(100-u.JPrime*ucsKl))
	hRad := math.Atan2(u.BPrime, u.APrime)
	mPrime := math.Hypot(u.APrime, u.BPrime)
	m := (math.Exp(mPrime*ucsC2) - 1) / ucsC2
	chroma := m / math.Pow(s.fl, 0.25)

	et := 0.25 * (math.Cos(hRad+2) + 3.8)
	ac := s.aw * math.Pow(j/100, 1/(s.c*s.z))

	t := math.Pow(chroma/(math.Sqrt(j/100)*math.Pow(1.64-math.Pow(0.29, s.nbb), 0.73)), 1.0/0.9)
	p1 := (50000.0 / 13.0) * s.nc * s.ncb * et
	p2 := ac/s.nbb + 0.305

	a, b := inverseOpponent(p1, p2, t, hRad)

	ra := (460.0/1403.0)*p2 + (451.0/1403.0)*a + (288.0/1403.0)*b
	ga := (460.0/1403.0)*p2 - (891.0/1403.0)*a - (261.0/1403.0)*b
	ba := (460.0/1403.0)*p2 - (220.0/1403.0)*a - (6300.0/1403.0)*b

	var rgbP [3]float64
	for i, v := range [3]float64{ra, ga, ba} {
		adj := v - 0.1
		sign := 1.0
		if adj < 0 {
			sign = -1.0
			adj = -adj
		}
		base := adj * 27.13 / (400 - adj)
		rgbP[i] = sign * 100 * math.Pow(math.Max(base, 0), 1.0/0.42) / s.fl
	}

	rgbC := matVec(invCatMInvHPE, rgbP)

	var rgb [3]float64
	for i := 0; i < 3; i++ {
		factor := s.d*(100.0/s.rgbW[i]) + 1 - s.d
		rgb[i] = rgbC[i] / factor
	}

	xyz := matVec(invCatM, rgb)
	return colorimetry.XYZ{X: xyz[0], Y: xyz[1], Z: xyz[2]}
}

// inverseOpponent recovers the opponent pair (a,b) from p1 = (50000/13)
// Nc Ncb et, p2 = Ac/Nbb + 0.305, t, and hue angle hRad, per the standard
// CIECAM02 inverse-model appendix (Moroney et al. 2002).
func inverseOpponent(p1, p2, t, hRad float64) (a, b float64) {
	if t <= 1e-12 {
		return 0, 0
	}
	const p3 = 21.0 / 20.0
	cosH, sinH := math.Cos(hRad), math.Sin(hRad)
	p := p1 / t

	if math.Abs(sinH) >= math.Abs(cosH) {
		p4 := p / sinH
		b = (p2 * (2 + p3) * (460.0 / 1403.0)) /
			(p4 + (2+p3)*(220.0/1403.0)*(cosH/sinH) - (27.0/1403.0) + p3*(6300.0/1403.0))
		a = b * (cosH / sinH)
	} else {
		p5 := p / cosH
		a = (p2 * (2 + p3) * (460.0 / 1403.0)) /
			(p5 + (2+p3)*(220.0/1403.0) - ((27.0/1403.0)-p3*(6300.0/1403.0))*(sinH/cosH))
		b = a * (sinH / cosH)
	}
	return a, b
}

var invCatM = invert3(catM)
var invCatMInvHPE = invert3(catMInvHPE)

func invert3(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	inv := [3][3]float64{}
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / det
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return inv
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
