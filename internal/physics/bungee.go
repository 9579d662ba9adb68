package physics

import (
	"fmt"

	"github.com/san-kum/bungee/internal/dynamo"
)

// Params describes one jump scenario. Positions are heights above the
// reference level (the ground), in meters; velocities are positive upward.
type Params struct {
	AttachmentHeight float64
	InitPosition     float64
	InitVelocity     float64
	Gravity          float64
	Mass             float64
	Area             float64
	AirDensity       float64
	TerminalVelocity float64
	CordLength       float64
	SpringConstant   float64
	Duration         float64
}

func (p Params) Validate() error {
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrInvalidParams, p.Mass)
	}
	if p.Area <= 0 {
		return fmt.Errorf("%w: area must be positive, got %g", dynamo.ErrInvalidParams, p.Area)
	}
	if p.CordLength < 0 {
		return fmt.Errorf("%w: cord resting length must be non-negative, got %g", dynamo.ErrInvalidParams, p.CordLength)
	}
	if p.SpringConstant < 0 {
		return fmt.Errorf("%w: spring constant must be non-negative, got %g", dynamo.ErrInvalidParams, p.SpringConstant)
	}
	if p.AirDensity < 0 {
		return fmt.Errorf("%w: air density must be non-negative, got %g", dynamo.ErrInvalidParams, p.AirDensity)
	}
	if p.AirDensity > 0 && p.TerminalVelocity <= 0 {
		return fmt.Errorf("%w: terminal velocity must be positive when air density is non-zero, got %g", dynamo.ErrInvalidParams, p.TerminalVelocity)
	}
	return nil
}

// DragCoefficient derives Cd from the force balance at terminal velocity,
// drag = gravity: rho * vt^2 * Cd * A / 2 == m * g.
func (p Params) DragCoefficient() float64 {
	if p.AirDensity == 0 {
		return 0
	}
	return 2 * p.Mass * p.Gravity / (p.AirDensity * p.TerminalVelocity * p.TerminalVelocity * p.Area)
}

// Bungee is the jumper-on-a-cord system. The parameter snapshot and the
// derived drag coefficient are fixed at construction; rebuild the model to
// change parameters.
type Bungee struct {
	p    Params
	drag float64
}

func NewBungee(p Params) (*Bungee, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Bungee{p: p, drag: p.DragCoefficient()}, nil
}

func (b *Bungee) Params() Params { return b.p }

func (b *Bungee) StateDim() int { return 2 }

func (b *Bungee) InitialState() dynamo.State {
	return dynamo.State{b.p.InitPosition, b.p.InitVelocity}
}

// SpringForce is the upward cord force at a given height. Zero while the
// fallen distance is within the resting length, Hookean beyond it; exactly
// zero at the engagement point, so the force is continuous.
func (b *Bungee) SpringForce(pos float64) float64 {
	fallen := b.p.AttachmentHeight - pos
	if fallen <= b.p.CordLength {
		return 0
	}
	return b.p.SpringConstant * (fallen - b.p.CordLength)
}

// DragForce opposes motion in either direction and vanishes at rest.
func (b *Bungee) DragForce(vel float64) float64 {
	return -sign(vel) * b.p.AirDensity * vel * vel * b.drag * b.p.Area / 2
}

func (b *Bungee) Derive(x dynamo.State, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	acc := -b.p.Gravity + b.DragForce(vel)/b.p.Mass + b.SpringForce(pos)/b.p.Mass
	return dynamo.State{vel, acc}
}

func (b *Bungee) Energy(x dynamo.State) float64 {
	pos, vel := x[0], x[1]
	ke := 0.5 * b.p.Mass * vel * vel
	pe := b.p.Mass * b.p.Gravity * pos
	stretch := b.p.AttachmentHeight - pos - b.p.CordLength
	if stretch > 0 {
		pe += 0.5 * b.p.SpringConstant * stretch * stretch
	}
	return ke + pe
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
