package spring

import (
	"math"
	"testing"
)

func TestSolveStartsAtInitialPosition(t *testing.T) {
	for _, zeta := range []float64{0.05, 0.1, 0.3, 0.5, 0.8, 0.95} {
		for _, k := range []int{0, 1, 3, 7} {
			c := Solve(zeta, k, 1, 0)
			if got := c(0); math.Abs(got-1) > 1e-12 {
				t.Errorf("Solve(%v, %d, 1, 0)(0) = %v, expected 1", zeta, k, got)
			}
		}
	}
}

func TestSolveSettles(t *testing.T) {
	c := Solve(0.8, 3, 1, 0)
	if got := c(1); math.Abs(got) > 1e-3 {
		t.Errorf("Expected curve to settle near 0 at t=1, got %v", got)
	}
}

func TestSolveAtRestHasZeroSlope(t *testing.T) {
	c := Solve(0.6, 3, 1, 0)
	const h = 1e-7
	slope := (c(h) - c(0)) / h
	if math.Abs(slope) > 1e-3 {
		t.Errorf("Expected zero initial slope, got %v", slope)
	}
}

func TestSolveHonoursInitialVelocity(t *testing.T) {
	for _, v0 := range []float64{-8, -2, 0.5, 3} {
		c := Solve(0.6, 3, 1, v0)
		const h = 1e-7
		slope := (c(h) - c(0)) / h
		if math.Abs(slope-v0) > 1e-3*math.Max(1, math.Abs(v0)) {
			t.Errorf("v0=%v: expected initial slope %v, got %v", v0, v0, slope)
		}
		if got := c(0); math.Abs(got-1) > 1e-12 {
			t.Errorf("v0=%v: expected c(0)=1, got %v", v0, got)
		}
	}
}

func TestOmegaBranchCorrection(t *testing.T) {
	zeta := 0.5
	// Continuous across B = 0 once the branch correction applies.
	below := Omega(1, -1e-9, 3, zeta)
	above := Omega(1, 1e-9, 3, zeta)
	if math.Abs(below-above) > 1e-6 {
		t.Errorf("Expected omega continuous across B=0, got %v and %v", below, above)
	}

	// No correction for k = 0.
	expected := (-math.Atan(-1.0)) / (2 * math.Pi * math.Sqrt(1-zeta*zeta))
	if got := Omega(1, -1, 0, zeta); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Omega(1, -1, 0) = %v, expected %v", got, expected)
	}
}

func TestBisectionTerminates(t *testing.T) {
	for _, zeta := range []float64{0.1, 0.5, 0.9} {
		for _, k := range []int{0, 1, 5, 10} {
			for _, v0 := range []float64{-20, -5, -1, -0.1, 0.1, 1, 5, 20} {
				omega, b, iterations := solveOmegaAndB(zeta, k, 1, v0/math.Pi/2)
				if iterations > MaxIterations {
					t.Errorf("ζ=%v k=%d v0=%v: %d iterations", zeta, k, v0, iterations)
				}
				if math.IsNaN(omega) || math.IsInf(omega, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
					t.Errorf("ζ=%v k=%d v0=%v: non-finite omega=%v B=%v", zeta, k, v0, omega, b)
				}

				c := Solve(zeta, k, 1, v0)
				for _, x := range []float64{0, 0.25, 0.5, 1} {
					if y := c(x); math.IsNaN(y) || math.IsInf(y, 0) {
						t.Errorf("ζ=%v k=%d v0=%v: c(%v) = %v", zeta, k, v0, x, y)
					}
				}
			}
		}
	}
}

func TestBisectionConverges(t *testing.T) {
	zeta, k, v0 := 0.6, 3, 4.0/math.Pi/2
	omega, b, iterations := solveOmegaAndB(zeta, k, 1, v0)
	if iterations >= MaxIterations {
		t.Fatalf("Expected convergence before the iteration cap")
	}
	omegaD := omega * math.Sqrt(1-zeta*zeta)
	if r := b - (zeta*omega+v0)/omegaD; math.Abs(r) > Tolerance {
		t.Errorf("Residual %v exceeds tolerance", r)
	}
}

func TestUndampedBisectionConverges(t *testing.T) {
	for _, k := range []int{3, 5, 10} {
		for _, v0 := range []float64{-8, -2, 0.5, 3, 8} {
			omega, b, iterations := solveOmegaAndB(0, k, 1, v0/math.Pi/2)
			if iterations >= MaxIterations {
				t.Errorf("k=%d v0=%v: expected convergence before the iteration cap", k, v0)
				continue
			}
			if r := b - v0/math.Pi/2/omega; math.Abs(r) > Tolerance {
				t.Errorf("k=%d v0=%v: residual %v exceeds tolerance", k, v0, r)
			}

			const h = 1e-7
			c := Solve(0, k, 1, v0)
			if slope := (c(h) - c(0)) / h; math.Abs(slope-v0) > 1e-3*math.Max(1, math.Abs(v0)) {
				t.Errorf("k=%d: expected initial slope %v, got %v", k, v0, slope)
			}
		}
	}
}

func TestParamsCurve(t *testing.T) {
	p := Params{Damping: 0.8, Stiffness: 3, Position: 1}
	a, b := p.Curve(), Solve(0.8, 3, 1, 0)
	for _, x := range []float64{0, 0.1, 0.4, 0.9} {
		if a(x) != b(x) {
			t.Errorf("Params.Curve(%v) = %v, Solve = %v", x, a(x), b(x))
		}
	}
}
