package metrics

import (
	"math"

	"github.com/san-kum/bungee/internal/dynamo"
)

// LowestPoint tracks the minimum position seen over a trajectory. Value
// returns +Inf until at least one state has been observed.
type LowestPoint struct {
	name string
	min  float64
}

func NewLowestPoint() *LowestPoint {
	return &LowestPoint{name: "lowest_point", min: math.Inf(1)}
}

func (l *LowestPoint) Name() string { return l.name }

func (l *LowestPoint) Observe(x dynamo.State, t float64) {
	if len(x) < 1 {
		return
	}
	l.min = math.Min(l.min, x[0])
}

func (l *LowestPoint) Value() float64 { return l.min }

func (l *LowestPoint) Reset() { l.min = math.Inf(1) }
