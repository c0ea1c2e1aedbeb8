/*
NAME
  deltae2000_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package colorimetry

import (
	"math"
	"testing"
)

func TestDeltaE2000SharmaPair1(t *testing.T) {
	a := Lab{50.0, 2.6772, -79.7751}
	b := Lab{50.0, 0.0, -82.7485}
	got := DeltaE2000(a, b)
	want := 2.0425
	if diff := math.Abs(got - want); diff > 0.001 {
		t.Errorf("DeltaE2000 = %v, want %v (diff %v)", got, want, diff)
	}
}

func TestDeltaE2000HueWrap(t *testing.T) {
	a := Lab{50, 2.5, 0}
	b := Lab{50, 0, -2.5}
	got := DeltaE2000(a, b)
	want := 4.3065
	if diff := math.Abs(got - want); diff > 0.001 {
		t.Errorf("DeltaE2000 = %v, want %v (diff %v)", got, want, diff)
	}
}

func TestDeltaE2000Symmetric(t *testing.T) {
	pairs := []struct{ a, b Lab }{
		{Lab{50.0, 2.6772, -79.7751}, Lab{50.0, 0.0, -82.7485}},
		{Lab{70, 20, -30}, Lab{68, 15, -28}},
		{Lab{10, -5, 5}, Lab{90, 40, -40}},
	}
	for _, p := range pairs {
		ab := DeltaE2000(p.a, p.b)
		ba := DeltaE2000(p.b, p.a)
		if diff := math.Abs(ab - ba); diff > 1e-6 {
			t.Errorf("DeltaE2000(a,b)=%v DeltaE2000(b,a)=%v not symmetric (diff %v)", ab, ba, diff)
		}
	}
}
