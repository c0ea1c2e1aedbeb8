/*
NAME
  observer.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package colorimetry implements tristimulus integration under CIE
// illuminants and standard observers, CIE L*a*b*, CIEDE2000, chromaticity,
// correlated color temperature, and Bradford chromatic adaptation.
package colorimetry

// Observer identifies a CIE standard colorimetric observer.
type Observer int

const (
	Observer2Deg Observer = iota
	Observer10Deg
)

func (o Observer) String() string {
	if o == Observer10Deg {
		return "10°"
	}
	return "2°"
}

// cmfGrid is the common 380-780nm @ 10nm, 41-band grid the tabulated color
// matching functions and illuminant SPDs below are defined on.
func cmfGrid() []float64 { return grid10(380, 41) }

func grid10(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*10
	}
	return out
}

// CMF holds the tabulated x̄, ȳ, z̄ color matching functions for one
// observer, over the common 41-band 380-780nm @ 10nm grid.
type CMF struct {
	X, Y, Z []float64
}

// cmf1931 is the CIE 1931 2° standard observer, 380-780nm @ 10nm (41 bands).
// Canonical CIE 15:2004 values; the 650nm Ȳ bin uses the canonical figure,
// per spec.md §9 open question 4 (not the tabulated outlier some device
// firmware carries).
var cmf1931 = CMF{
	X: []float64{
		0.0014, 0.0042, 0.0143, 0.0435, 0.1344, 0.2839, 0.3483, 0.3362, 0.2908,
		0.1954, 0.0956, 0.0320, 0.0049, 0.0093, 0.0633, 0.1655, 0.2904, 0.4334,
		0.5945, 0.7621, 0.9163, 1.0263, 1.0622, 1.0026, 0.8544, 0.6424, 0.4479,
		0.2835, 0.1649, 0.0874, 0.0468, 0.0227, 0.0114, 0.0058, 0.0029, 0.0014,
		0.0007, 0.0003, 0.0002, 0.0001, 0.0000,
	},
	Y: []float64{
		0.0000, 0.0001, 0.0004, 0.0012, 0.0040, 0.0116, 0.0230, 0.0380, 0.0600,
		0.0910, 0.1390, 0.2080, 0.3230, 0.5030, 0.7100, 0.8620, 0.9540, 0.9950,
		0.9950, 0.9520, 0.8700, 0.7570, 0.6310, 0.5030, 0.3810, 0.2650, 0.1750,
		0.1070, 0.0610, 0.0320, 0.0170, 0.0082, 0.0041, 0.0021, 0.0010, 0.0005,
		0.0002, 0.0001, 0.0001, 0.0000, 0.0000,
	},
	Z: []float64{
		0.0065, 0.0201, 0.0679, 0.2074, 0.6456, 1.3856, 1.7471, 1.7721, 1.6692,
		1.2876, 0.8130, 0.4652, 0.2720, 0.1582, 0.0782, 0.0422, 0.0203, 0.0087,
		0.0039, 0.0021, 0.0017, 0.0011, 0.0008, 0.0003, 0.0002, 0.0000, 0.0000,
		0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
		0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	},
}

// cmf1964 is the CIE 1964 10° supplementary standard observer, 380-780nm @
// 10nm (41 bands).
var cmf1964 = CMF{
	X: []float64{
		0.0002, 0.0024, 0.0191, 0.0847, 0.2045, 0.3147, 0.3837, 0.3707, 0.3023,
		0.1956, 0.0805, 0.0162, 0.0038, 0.0375, 0.1177, 0.2365, 0.3768, 0.5298,
		0.7052, 0.8787, 1.0142, 1.1185, 1.1240, 1.0305, 0.8563, 0.6475, 0.4316,
		0.2683, 0.1526, 0.0813, 0.0409, 0.0199, 0.0096, 0.0046, 0.0022, 0.0010,
		0.0005, 0.0003, 0.0001, 0.0001, 0.0000,
	},
	Y: []float64{
		0.0000, 0.0003, 0.0020, 0.0088, 0.0214, 0.0387, 0.0621, 0.0895, 0.1282,
		0.1852, 0.2536, 0.3391, 0.4608, 0.6067, 0.7618, 0.8752, 0.9620, 0.9918,
		0.9973, 0.9556, 0.8689, 0.7774, 0.6583, 0.5280, 0.3981, 0.2835, 0.1798,
		0.1076, 0.0603, 0.0318, 0.0159, 0.0077, 0.0037, 0.0018, 0.0008, 0.0004,
		0.0002, 0.0001, 0.0000, 0.0000, 0.0000,
	},
	Z: []float64{
		0.0007, 0.0105, 0.0860, 0.3894, 0.9725, 1.5535, 1.9673, 1.9948, 1.7454,
		1.3176, 0.7721, 0.4153, 0.2185, 0.1120, 0.0607, 0.0305, 0.0137, 0.0040,
		0.0011, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
		0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
		0.0000, 0.0000, 0.0000, 0.0000, 0.0000,
	},
}

// CMFFor returns the tabulated color matching functions for an observer.
func CMFFor(o Observer) CMF {
	if o == Observer10Deg {
		return cmf1964
	}
	return cmf1931
}
