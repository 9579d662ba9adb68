package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// System is an autonomous ODE: dX/dt = Derive(X, t). Derive must be a pure
// function of its arguments.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Event is a scalar stopping predicate. The simulator watches its value at
// every accepted step and stops at the first negative to non-negative sign
// change, refined to the configured tolerance.
type Event interface {
	Eval(x State, t float64) float64
}

type EventFunc func(x State, t float64) float64

func (f EventFunc) Eval(x State, t float64) float64 { return f(x, t) }

// EventCrossing marks where the event predicate first crossed zero.
type EventCrossing struct {
	Time  float64
	State State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.001,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.05,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Result holds the trajectory of one run. Times and States are parallel
// slices; Event is nil when the predicate never crossed zero before the
// horizon ended.
type Result struct {
	Times      []float64
	States     []State
	Metrics    map[string]float64
	EnergyLoss float64
	StepsTaken int
	Event      *EventCrossing
}
