package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/bungee/internal/dynamo"
	"github.com/san-kum/bungee/internal/physics"
)

func testModel(t *testing.T) *physics.Bungee {
	t.Helper()
	b, err := physics.NewBungee(physics.Params{
		AttachmentHeight: 80,
		InitPosition:     80,
		Gravity:          9.8,
		Mass:             75,
		Area:             1,
		AirDensity:       1.2,
		TerminalVelocity: 60,
		CordLength:       25,
		SpringConstant:   40,
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestLowestPoint(t *testing.T) {
	m := NewLowestPoint()

	if !math.IsInf(m.Value(), 1) {
		t.Error("expected +Inf before any observation")
	}

	for _, pos := range []float64{80, 50, 15, 30, 60} {
		m.Observe(dynamo.State{pos, 0}, 0)
	}
	if m.Value() != 15 {
		t.Errorf("lowest point = %v, want 15", m.Value())
	}

	m.Reset()
	if !math.IsInf(m.Value(), 1) {
		t.Error("Reset should clear the minimum")
	}
}

func TestPeakTension(t *testing.T) {
	m := NewPeakTension(testModel(t))

	m.Observe(dynamo.State{80, 0}, 0) // slack
	if m.Value() != 0 {
		t.Errorf("slack cord should have zero tension, got %v", m.Value())
	}

	m.Observe(dynamo.State{45, 0}, 1) // stretch 10 m
	m.Observe(dynamo.State{50, 0}, 2) // stretch 5 m
	if math.Abs(m.Value()-400) > 1e-9 {
		t.Errorf("peak tension = %v, want 400", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset should clear the peak")
	}
}

func TestDissipation(t *testing.T) {
	model := testModel(t)
	m := NewDissipation(model)

	if m.Value() != 0 {
		t.Error("expected zero dissipation before any observation")
	}

	m.Observe(dynamo.State{80, 0}, 0)
	m.Observe(dynamo.State{70, -10}, 1)

	// E0 = 75*9.8*80; E1 = 75*9.8*70 + 0.5*75*100
	want := 75*9.8*80 - (75*9.8*70 + 0.5*75*100.0)
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("dissipated energy = %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset should clear the baseline")
	}
}
