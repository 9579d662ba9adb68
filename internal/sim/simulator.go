package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/bungee/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	event      dynamo.Event
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// SetEvent installs a stopping predicate. The run terminates at the first
// negative to non-negative sign change of the predicate, refined to the
// configured tolerance.
func (s *Simulator) SetEvent(e dynamo.Event) { s.event = e }

// Run advances the system from x0 over [0, cfg.Duration], or until the
// event predicate crosses zero. The returned trajectory is truncated at the
// crossing when one is found. A non-finite state aborts the run with a
// SimulationError carrying the last finite state and time.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			dynamo.ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		Times:   make([]float64, 0, steps+1),
		States:  make([]dynamo.State, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	s.record(result, x, t)
	initialEnergy := s.computeEnergy(x)

	var prevEv float64
	if s.event != nil {
		prevEv = s.event.Eval(x, t)
	}

	const tEps = 1e-12
	for step := 0; t < cfg.Duration-tEps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		h := math.Min(dt, cfg.Duration-t)

		var newX dynamo.State
		var stepErr error
		if cfg.Adaptive {
			newX, h, dt, stepErr = s.adaptiveStep(x, t, h, cfg)
		} else {
			newX = s.integrator.Step(s.dyn, x, t, h)
		}

		if stepErr != nil {
			return result, &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: stepErr}
		}
		if cfg.ValidateState && !newX.IsValid() {
			return result, &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: dynamo.ErrDiverged}
		}

		tNew := t + h

		if s.event != nil {
			ev := s.event.Eval(newX, tNew)
			if prevEv < 0 && ev >= 0 {
				ct, cx := s.refineCrossing(x, t, h, cfg)
				s.record(result, cx, ct)
				result.StepsTaken++
				result.Event = &dynamo.EventCrossing{Time: ct, State: cx.Clone()}
				s.finish(result, initialEnergy, cx)
				return result, nil
			}
			prevEv = ev
		}

		x, t = newX, tNew
		result.StepsTaken++
		s.record(result, x, t)
	}

	s.finish(result, initialEnergy, x)
	return result, nil
}

// RunWithCallback streams states to the caller instead of accumulating a
// trajectory; the callback returns false to stop early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 dynamo.State, cfg dynamo.Config, callback func(dynamo.State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: state has %d components, system wants %d",
			dynamo.ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	const tEps = 1e-12
	for t < cfg.Duration-tEps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		h := math.Min(dt, cfg.Duration-t)
		x = s.integrator.Step(s.dyn, x, t, h)
		t += h

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", dynamo.ErrDiverged, t)
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) record(result *dynamo.Result, x dynamo.State, t float64) {
	result.Times = append(result.Times, t)
	result.States = append(result.States, x.Clone())
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) finish(result *dynamo.Result, initialEnergy float64, x dynamo.State) {
	if initialEnergy != 0 {
		result.EnergyLoss = (initialEnergy - s.computeEnergy(x)) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if ec, ok := s.dyn.(dynamo.Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}

// refineCrossing bisects the step fraction within the interval straddling
// the sign change, re-stepping from the last accepted state each probe.
// Returns the first point at which the predicate is non-negative.
func (s *Simulator) refineCrossing(x dynamo.State, t, h float64, cfg dynamo.Config) (float64, dynamo.State) {
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 1e-9
	}

	lo, hi := 0.0, h
	xHi := s.integrator.Step(s.dyn, x, t, h)

	for i := 0; i < 64 && hi-lo > tol*h; i++ {
		mid := 0.5 * (lo + hi)
		xm := s.integrator.Step(s.dyn, x, t, mid)
		if s.event.Eval(xm, t+mid) >= 0 {
			hi, xHi = mid, xm
		} else {
			lo = mid
		}
	}

	return t + hi, xHi
}

// adaptiveStep advances by at most h, shrinking on local-error rejection.
// It returns the new state, the step actually taken, and the step size to
// try next.
func (s *Simulator) adaptiveStep(x dynamo.State, t, h float64, cfg dynamo.Config) (dynamo.State, float64, float64, error) {
	if adaptive, ok := s.integrator.(dynamo.AdaptiveIntegrator); ok {
		for {
			newX, suggested, err := adaptive.StepAdaptive(s.dyn, x, t, h, cfg.Tolerance)
			if err != nil {
				return nil, 0, 0, err
			}
			if suggested >= h || h <= cfg.MinDt {
				next := math.Min(math.Max(suggested, cfg.MinDt), cfg.MaxDt)
				return newX, h, next, nil
			}
			h = math.Max(suggested, cfg.MinDt)
		}
	}

	// Step-doubling fallback: compare one full step against two half steps.
	for {
		x1 := s.integrator.Step(s.dyn, x, t, h)
		xHalf := s.integrator.Step(s.dyn, x, t, h/2)
		x2 := s.integrator.Step(s.dyn, xHalf, t+h/2, h/2)

		errEst := x1.Sub(x2).Norm()
		if errEst > cfg.Tolerance && h > cfg.MinDt {
			h = math.Max(h/2, cfg.MinDt)
			continue
		}

		next := h
		if errEst < cfg.Tolerance/10 {
			next = math.Min(h*2, cfg.MaxDt)
		}
		return x2, h, next, nil
	}
}
