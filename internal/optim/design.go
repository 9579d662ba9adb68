package optim

import (
	"context"
	"math"

	"github.com/san-kum/bungee/internal/dynamo"
	"github.com/san-kum/bungee/internal/integrators"
	"github.com/san-kum/bungee/internal/metrics"
	"github.com/san-kum/bungee/internal/physics"
	"github.com/san-kum/bungee/internal/sim"
)

// CordSolver calibrates the cord resting length so that the lowest point of
// the jump lands on a target height. Each candidate length runs one fresh,
// independent simulation; nothing is shared between evaluations.
type CordSolver struct {
	Base    physics.Params
	Target  float64
	Config  dynamo.Config
	Options Options

	NewIntegrator func() dynamo.Integrator
}

type CordSolution struct {
	Length     float64
	Residual   float64
	Iterations int
}

func NewCordSolver(base physics.Params, target float64) *CordSolver {
	cfg := dynamo.DefaultConfig()
	if base.Duration > 0 {
		cfg.Duration = base.Duration
	}
	return &CordSolver{
		Base:          base,
		Target:        target,
		Config:        cfg,
		Options:       DefaultOptions(),
		NewIntegrator: func() dynamo.Integrator { return integrators.NewRK4() },
	}
}

// Solve finds the length whose lowest point matches the target, on a
// bracket whose height errors must straddle zero.
func (s *CordSolver) Solve(ctx context.Context, lo, hi float64) (*CordSolution, error) {
	res, err := Brent(s.objective(ctx), lo, hi, s.Options)
	if err != nil {
		return nil, err
	}
	return &CordSolution{Length: res.Root, Residual: res.Residual, Iterations: res.Iterations}, nil
}

// MinHeight simulates one candidate length and returns the lowest position
// reached: the event state when the velocity upcross fired, otherwise the
// minimum over the whole trajectory.
func (s *CordSolver) MinHeight(ctx context.Context, length float64) (float64, error) {
	dyn, err := s.model(length)
	if err != nil {
		return 0, err
	}

	runner := sim.New(dyn, s.NewIntegrator())
	runner.SetEvent(sim.VelocityUpcross{})
	lowest := metrics.NewLowestPoint()
	runner.AddMetric(lowest)

	result, err := runner.Run(ctx, dyn.InitialState(), s.Config)
	if err != nil {
		return 0, err
	}
	if result.Event != nil {
		return result.Event.State[0], nil
	}
	return result.Metrics[lowest.Name()], nil
}

// SweepLengths evaluates candidate lengths concurrently. The returned
// slices are positional; a failed candidate has NaN in place of its height
// and its error set.
func (s *CordSolver) SweepLengths(ctx context.Context, lengths []float64) ([]float64, []error) {
	heights := make([]float64, len(lengths))
	errs := make([]error, len(lengths))

	systems := make([]dynamo.System, 0, len(lengths))
	x0s := make([]dynamo.State, 0, len(lengths))
	valid := make([]int, 0, len(lengths))

	for i, l := range lengths {
		dyn, err := s.model(l)
		if err != nil {
			heights[i] = math.NaN()
			errs[i] = err
			continue
		}
		systems = append(systems, dyn)
		x0s = append(x0s, dyn.InitialState())
		valid = append(valid, i)
	}

	sweep := sim.NewSweep(s.NewIntegrator, sim.VelocityUpcross{})
	results, runErrs := sweep.Run(ctx, systems, x0s, s.Config)

	for j, idx := range valid {
		if runErrs[j] != nil {
			heights[idx] = math.NaN()
			errs[idx] = runErrs[j]
			continue
		}
		heights[idx] = minHeightOf(results[j])
	}

	return heights, errs
}

// FindBracket locates a sign change of the height error by sweeping
// subdivided candidates in parallel, growing the interval geometrically
// when every candidate lies on the same side. Candidates that fail to
// simulate are skipped rather than treated as roots.
func (s *CordSolver) FindBracket(ctx context.Context, lo, hi float64, maxExpand int) (float64, float64, error) {
	const subdivisions = 8

	fLo, fHi := math.NaN(), math.NaN()
	for round := 0; round <= maxExpand; round++ {
		lengths := make([]float64, subdivisions+1)
		for i := range lengths {
			lengths[i] = lo + float64(i)*(hi-lo)/subdivisions
		}

		heights, _ := s.SweepLengths(ctx, lengths)

		prev := -1
		for i, h := range heights {
			if math.IsNaN(h) {
				continue
			}
			f := h - s.Target
			if prev < 0 {
				fLo = f
			}
			fHi = f
			if prev >= 0 {
				fPrev := heights[prev] - s.Target
				if fPrev == 0 || f == 0 || (fPrev < 0) != (f < 0) {
					return lengths[prev], lengths[i], nil
				}
			}
			prev = i
		}

		hi += hi - lo
	}

	return 0, 0, &BracketError{Lo: lo, Hi: hi, FLo: fLo, FHi: fHi}
}

func (s *CordSolver) objective(ctx context.Context) Objective {
	return func(length float64) (float64, error) {
		h, err := s.MinHeight(ctx, length)
		if err != nil {
			return 0, err
		}
		return h - s.Target, nil
	}
}

func (s *CordSolver) model(length float64) (*physics.Bungee, error) {
	p := s.Base
	p.CordLength = length
	return physics.NewBungee(p)
}

func minHeightOf(r *dynamo.Result) float64 {
	if r.Event != nil {
		return r.Event.State[0]
	}
	m := math.Inf(1)
	for _, x := range r.States {
		m = math.Min(m, x[0])
	}
	return m
}
