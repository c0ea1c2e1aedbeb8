/*
NAME
  deltae2000.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import "math"

// DeltaE2000 implements the Sharma, Wu & Dalal (2005) reference CIEDE2000
// formula, with unity parametric weights (kL=kC=kH=1).
func DeltaE2000(lab1, lab2 Lab) float64 {
	const pow7of25 = 6103515625.0 // 25^7

	l1, a1, b1 := lab1.L, lab1.A, lab1.B
	l2, a2, b2 := lab2.L, lab2.A, lab2.B

	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	cbar := (c1 + c2) / 2

	g := 0.5 * (1 - math.Sqrt(pow(cbar, 7)/(pow(cbar, 7)+pow7of25)))

	a1p := (1 + g) * a1
	a2p := (1 + g) * a2

	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)

	h1p := hueAngle(b1, a1p)
	h2p := hueAngle(b2, a2p)

	deltaLp := l2 - l1
	deltaCp := c2p - c1p

	var deltahp float64
	if c1p*c2p == 0 {
		deltahp = 0
	} else {
		dh := h2p - h1p
		switch {
		case dh > 180:
			dh -= 360
		case dh < -180:
			dh += 360
		}
		deltahp = dh
	}
	deltaHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(deg2rad(deltahp)/2)

	lbarp := (l1 + l2) / 2
	cbarp := (c1p + c2p) / 2

	var hbarp float64
	switch {
	case c1p*c2p == 0:
		hbarp = h1p + h2p
	case math.Abs(h1p-h2p) > 180:
		if h1p+h2p < 360 {
			hbarp = (h1p + h2p + 360) / 2
		} else {
			hbarp = (h1p + h2p - 360) / 2
		}
	default:
		hbarp = (h1p + h2p) / 2
	}

	t := 1 - 0.17*math.Cos(deg2rad(hbarp-30)) +
		0.24*math.Cos(deg2rad(2*hbarp)) +
		0.32*math.Cos(deg2rad(3*hbarp+6)) -
		0.20*math.Cos(deg2rad(4*hbarp-63))

	deltaTheta := 30 * math.Exp(-sq((hbarp-275)/25))
	rc := 2 * math.Sqrt(pow(cbarp, 7)/(pow(cbarp, 7)+pow7of25))

	sl := 1 + 0.015*sq(lbarp-50)/math.Sqrt(20+sq(lbarp-50))
	sc := 1 + 0.045*cbarp
	sh := 1 + 0.015*cbarp*t

	rt := -math.Sin(deg2rad(2*deltaTheta)) * rc

	termL := deltaLp / sl
	termC := deltaCp / sc
	termH := deltaHp / sh

	return math.Sqrt(termL*termL + termC*termC + termH*termH + rt*termC*termH)
}

// hueAngle returns atan2(b,a) in degrees, normalized to [0,360), with the
// atan2(0,0)->0 guard.
func hueAngle(b, a float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := rad2deg(math.Atan2(b, a))
	if h < 0 {
		h += 360
	}
	return h
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func pow(x float64, n int) float64 {
	return math.Pow(x, float64(n))
}
