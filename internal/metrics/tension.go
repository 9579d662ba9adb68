package metrics

import (
	"math"

	"github.com/san-kum/bungee/internal/dynamo"
	"github.com/san-kum/bungee/internal/physics"
)

// PeakTension tracks the maximum cord force along a trajectory.
type PeakTension struct {
	name  string
	model *physics.Bungee
	max   float64
}

func NewPeakTension(model *physics.Bungee) *PeakTension {
	return &PeakTension{name: "peak_tension", model: model}
}

func (p *PeakTension) Name() string { return p.name }

func (p *PeakTension) Observe(x dynamo.State, t float64) {
	if len(x) < 1 {
		return
	}
	p.max = math.Max(p.max, p.model.SpringForce(x[0]))
}

func (p *PeakTension) Value() float64 { return p.max }

func (p *PeakTension) Reset() { p.max = 0 }
