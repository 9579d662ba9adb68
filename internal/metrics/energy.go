package metrics

import "github.com/san-kum/bungee/internal/dynamo"

// Dissipation tracks energy lost since the start of a run, via the
// system's Hamiltonian. For the bungee model the loss is the work done by
// drag.
type Dissipation struct {
	name    string
	dyn     dynamo.Hamiltonian
	samples int
	initial float64
	current float64
}

func NewDissipation(dyn dynamo.Hamiltonian) *Dissipation {
	return &Dissipation{name: "energy_dissipated", dyn: dyn}
}

func (d *Dissipation) Name() string { return d.name }

func (d *Dissipation) Observe(x dynamo.State, t float64) {
	energy := d.dyn.Energy(x)
	if d.samples == 0 {
		d.initial = energy
	}
	d.current = energy
	d.samples++
}

func (d *Dissipation) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.initial - d.current
}

func (d *Dissipation) Reset() {
	d.samples = 0
	d.initial = 0
	d.current = 0
}
