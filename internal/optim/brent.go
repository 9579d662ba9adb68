package optim

import (
	"fmt"
	"math"
)

// Objective is the scalar function whose root is sought. An error return
// marks the abscissa as unusable (e.g. a diverged simulation), which is
// different from a zero value.
type Objective func(x float64) (float64, error)

type Options struct {
	Tolerance float64 // abscissa tolerance
	MaxIter   int
}

func DefaultOptions() Options {
	return Options{Tolerance: 1e-9, MaxIter: 100}
}

type Result struct {
	Root       float64
	Residual   float64
	Iterations int
}

// BracketError reports endpoints whose objective values share a sign.
type BracketError struct {
	Lo, Hi   float64
	FLo, FHi float64
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("optim: no sign change on [%g, %g] (f: %g, %g)", e.Lo, e.Hi, e.FLo, e.FHi)
}

// ConvergenceError reports the state of the search when the iteration
// budget ran out.
type ConvergenceError struct {
	Iterations int
	Lo, Hi     float64
	Best       float64
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("optim: no convergence after %d iterations, bracket [%g, %g], best %g (residual %g)",
		e.Iterations, e.Lo, e.Hi, e.Best, e.Residual)
}

const eps = 3e-16

// Brent finds a root of f on [lo, hi] using inverse quadratic or secant
// interpolation with a bisection fallback. The endpoints must evaluate
// cleanly and straddle zero. Trial points whose objective fails are
// excluded by nudging the abscissa within the current bracket.
func Brent(f Objective, lo, hi float64, opts Options) (*Result, error) {
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultOptions().MaxIter
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}

	a, b := lo, hi
	fa, err := f(a)
	if err != nil {
		return nil, fmt.Errorf("optim: objective failed at lower endpoint %g: %w", a, err)
	}
	fb, err := f(b)
	if err != nil {
		return nil, fmt.Errorf("optim: objective failed at upper endpoint %g: %w", b, err)
	}
	if (fa > 0 && fb > 0) || (fa < 0 && fb < 0) {
		return nil, &BracketError{Lo: a, Hi: b, FLo: fa, FHi: fb}
	}

	c, fc := a, fa
	var d, e float64
	for iter := 1; iter <= opts.MaxIter; iter++ {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*eps*math.Abs(b) + 0.5*opts.Tolerance
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return &Result{Root: b, Residual: fb, Iterations: iter}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}

		b, fb, err = evalNear(f, b, xm)
		if err != nil {
			return nil, fmt.Errorf("optim: objective failed near %g: %w", b, err)
		}
	}

	return nil, &ConvergenceError{
		Iterations: opts.MaxIter,
		Lo:         math.Min(b, c),
		Hi:         math.Max(b, c),
		Best:       b,
		Residual:   fb,
	}
}

// evalNear evaluates f at x, retrying at small offsets toward the far
// bracket endpoint when a candidate cannot be evaluated, so one failed
// candidate does not abort the whole search.
func evalNear(f Objective, x, xm float64) (float64, float64, error) {
	w := 2 * xm // signed distance toward the far endpoint
	var err error
	for _, frac := range []float64{0, 1e-3, 1e-2, 5e-2, 0.25} {
		xx := x + frac*w
		var fx float64
		fx, err = f(xx)
		if err == nil {
			return xx, fx, nil
		}
	}
	return x, 0, err
}
