package sim

import "github.com/san-kum/bungee/internal/dynamo"

// VelocityUpcross is the lowest-point predicate for a fall: its value is the
// velocity component, so the negative to non-negative crossing is the
// instant downward motion stops.
type VelocityUpcross struct{}

func (VelocityUpcross) Eval(x dynamo.State, t float64) float64 { return x[1] }

// PositionBelow fires when the position component drops to the threshold.
type PositionBelow struct {
	Threshold float64
}

func (p PositionBelow) Eval(x dynamo.State, t float64) float64 { return p.Threshold - x[0] }
