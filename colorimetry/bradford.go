/*
NAME
  bradford.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import "gonum.org/v1/gonum/mat"

// bradfordM and bradfordMInv are the fixed Bradford chromatic-adaptation
// matrix (XYZ -> LMS cone response) and its exact inverse.
var bradfordM = mat.NewDense(3, 3, []float64{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
})

var bradfordMInv = mat.NewDense(3, 3, []float64{
	0.9869929, -0.1470543, 0.1599627,
	0.4323053, 0.5183603, 0.0492912,
	-0.0085287, 0.0400428, 0.9684867,
})

// BradfordAdapt adapts XYZ color c from source white point src to
// destination white point dst via the Bradford transform, without
// clamping.
func BradfordAdapt(c, src, dst XYZ) XYZ {
	lmsSrc := bradfordApply(bradfordM, src)
	lmsDst := bradfordApply(bradfordM, dst)

	d := mat.NewDense(3, 3, []float64{
		lmsDst[0] / lmsSrc[0], 0, 0,
		0, lmsDst[1] / lmsSrc[1], 0,
		0, 0, lmsDst[2] / lmsSrc[2],
	})

	var md mat.Dense
	md.Mul(bradfordMInv, d)
	md.Mul(&md, bradfordM)

	xyzVec := mat.NewVecDense(3, []float64{c.X, c.Y, c.Z})
	var out mat.VecDense
	out.MulVec(&md, xyzVec)
	return XYZ{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func bradfordApply(m *mat.Dense, c XYZ) [3]float64 {
	v := mat.NewVecDense(3, []float64{c.X, c.Y, c.Z})
	var out mat.VecDense
	out.MulVec(m, v)
	return [3]float64{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}
