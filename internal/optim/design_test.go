package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bungee/internal/dynamo"
	"github.com/san-kum/bungee/internal/physics"
)

func classicParams() physics.Params {
	return physics.Params{
		AttachmentHeight: 80,
		InitPosition:     80,
		InitVelocity:     0,
		Gravity:          9.8,
		Mass:             75,
		Area:             1,
		AirDensity:       1.2,
		TerminalVelocity: 60,
		CordLength:       25,
		SpringConstant:   40,
		Duration:         20,
	}
}

func TestCordSolverScenario(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)
	ctx := context.Background()

	sol, err := solver.Solve(ctx, 25, 60)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if sol.Iterations <= 0 {
		t.Error("expected a positive iteration count")
	}

	// the calibrated length must put the lowest point within a centimeter
	// of the target
	h, err := solver.MinHeight(ctx, sol.Length)
	if err != nil {
		t.Fatalf("re-simulation failed: %v", err)
	}
	if math.Abs(h) > 0.01 {
		t.Errorf("lowest point with L*=%.4f is %.4f m, want |h| <= 0.01", sol.Length, h)
	}
}

func TestCordSolverBaselineHeight(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)

	h, err := solver.MinHeight(context.Background(), 25)
	if err != nil {
		t.Fatalf("MinHeight failed: %v", err)
	}
	if h < 5.3 || h > 5.5 {
		t.Errorf("reference scenario lowest point %.3f m, want ~5.40 m", h)
	}
}

func TestCordSolverInvalidBracket(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)

	// both lengths leave the jumper well above the ground
	_, err := solver.Solve(context.Background(), 5, 10)

	var bracketErr *BracketError
	if !errors.As(err, &bracketErr) {
		t.Fatalf("expected BracketError, got %v", err)
	}
}

func TestCordSolverInvalidParams(t *testing.T) {
	p := classicParams()
	p.Mass = -1
	solver := NewCordSolver(p, 0)

	_, err := solver.Solve(context.Background(), 25, 60)
	if !errors.Is(err, dynamo.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestSweepLengthsMatchesSerial(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)
	ctx := context.Background()

	lengths := []float64{20, 30, 40}
	heights, errs := solver.SweepLengths(ctx, lengths)

	for i, l := range lengths {
		if errs[i] != nil {
			t.Fatalf("candidate %g failed: %v", l, errs[i])
		}
		want, err := solver.MinHeight(ctx, l)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(heights[i]-want) > 1e-9 {
			t.Errorf("candidate %g: sweep %.9f vs serial %.9f", l, heights[i], want)
		}
	}
}

func TestSweepLengthsFlagsBadCandidate(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)

	heights, errs := solver.SweepLengths(context.Background(), []float64{25, -1})

	if errs[0] != nil {
		t.Errorf("valid candidate failed: %v", errs[0])
	}
	if errs[1] == nil || !math.IsNaN(heights[1]) {
		t.Error("negative length should be rejected and marked NaN")
	}
}

func TestFindBracket(t *testing.T) {
	solver := NewCordSolver(classicParams(), 0)
	ctx := context.Background()

	lo, hi, err := solver.FindBracket(ctx, 5, 60, 3)
	if err != nil {
		t.Fatalf("FindBracket failed: %v", err)
	}
	if lo >= hi {
		t.Fatalf("degenerate bracket [%v, %v]", lo, hi)
	}

	fLo, err := solver.MinHeight(ctx, lo)
	if err != nil {
		t.Fatal(err)
	}
	fHi, err := solver.MinHeight(ctx, hi)
	if err != nil {
		t.Fatal(err)
	}
	if (fLo < 0) == (fHi < 0) {
		t.Errorf("bracket does not straddle the target: f(lo)=%v, f(hi)=%v", fLo, fHi)
	}
}
