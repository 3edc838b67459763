// Package spring generates easing curves for a damped mass-spring system.
//
// A curve describes the displacement of an underdamped oscillator released
// from an initial position with an initial velocity:
//
//	y(t) = e^(-ζωt) · (A·cos(ω_d·t) + B·sin(ω_d·t)),  ω_d = ω·√(1-ζ²)
//
// The stiffness is an integer half-cycle selector: it picks how many times
// the curve crosses zero before settling inside the unit interval.
package spring

import (
	"math"
)

const (
	// Tolerance is the residual accepted by the bisection search.
	Tolerance = 1e-6
	// MaxIterations caps the bisection search, bracket expansion included.
	MaxIterations = 1000

	restVelocity = 1e-6
)

// Curve is a spring displacement as a function of normalised time. It is
// valid for t >= 0 and is not clamped to [0, 1].
type Curve func(t float64) float64

// Params describes a spring curve.
type Params struct {
	Damping   float64 `yaml:"damping"`
	Stiffness int     `yaml:"stiffness"`
	Position  float64 `yaml:"position"`
	Velocity  float64 `yaml:"velocity"`
}

// Curve solves the spring described by p.
func (p Params) Curve() Curve {
	return Solve(p.Damping, p.Stiffness, p.Position, p.Velocity)
}

// Solve returns the displacement curve for damping ratio zeta in [0, 1),
// half-cycle count k, initial position y0 and initial velocity v0.
func Solve(zeta float64, k int, y0, v0 float64) Curve {
	a := y0
	var b, omega float64

	if math.Abs(v0) < restVelocity {
		// At rest there is a closed form.
		b = zeta * y0 / math.Sqrt(1-zeta*zeta)
		omega = Omega(a, b, k, zeta)
	} else {
		// Velocity is pre-scaled to stay consistent with the 2π rescale below.
		omega, b, _ = solveOmegaAndB(zeta, k, y0, v0/math.Pi/2)
	}

	omega *= 2 * math.Pi
	omegaD := omega * math.Sqrt(1-zeta*zeta)

	return func(t float64) float64 {
		sinusoid := a*math.Cos(omegaD*t) + b*math.Sin(omegaD*t)
		return math.Exp(-t*zeta*omega) * sinusoid
	}
}

// Omega returns the angular frequency (in cycles) that places k half-cycles
// of the sinusoid A·cos + B·sin inside the unit interval.
func Omega(a, b float64, k int, zeta float64) float64 {
	// atan only covers (-π/2, π/2). When A/B is negative the branch is off
	// by π, which would add an extra half-cycle.
	if a*b < 0 && k >= 1 {
		k--
	}

	return (-math.Atan(a/b) + math.Pi*float64(k)) / (2 * math.Pi * math.Sqrt(1-zeta*zeta))
}

// solveOmegaAndB resolves the mutually recursive definitions of omega and B
// by bisection on B. It returns the best estimate found and the number of
// iterations used; reaching MaxIterations is not an error.
func solveOmegaAndB(zeta float64, k int, y0, v0 float64) (omega, b float64, iterations int) {
	a := y0
	residual := func(b, omega float64) float64 {
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		return b - (zeta*omega*y0+v0)/omegaD
	}

	var errv, direction float64
	step := func() {
		omega = Omega(a, b, k, zeta)
		errv = residual(b, omega)
		direction = -sign(errv)
	}

	// An undamped search seeded at zero would never widen the bracket.
	b = zeta
	if b == 0 {
		b = 1
	}
	step()
	if math.Abs(errv) < Tolerance {
		return omega, b, iterations
	}

	var lower, upper float64
	if direction > 0 {
		for direction > 0 {
			iterations++
			if iterations > MaxIterations {
				break
			}
			lower = b
			b *= 2
			step()
		}
		upper = b
	} else {
		upper = b
		b = -b
		for direction < 0 {
			iterations++
			if iterations > MaxIterations {
				break
			}
			b *= 2
			step()
		}
		lower = b
	}

	for math.Abs(errv) > Tolerance {
		iterations++
		if iterations > MaxIterations {
			break
		}

		b = (upper + lower) / 2
		step()

		if direction > 0 {
			lower = b
		} else {
			upper = b
		}
	}

	if iterations > MaxIterations {
		iterations = MaxIterations
	}
	return omega, b, iterations
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
