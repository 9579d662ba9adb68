package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

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

var _ = Describe("Bungee", func() {
	var b *physics.Bungee

	BeforeEach(func() {
		var err error
		b, err = physics.NewBungee(classicParams())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("spring force", func() {
		It("is zero while the cord is slack", func() {
			Expect(b.SpringForce(80)).To(BeZero())
			Expect(b.SpringForce(60)).To(BeZero())
			// fallen distance exactly equals the resting length
			Expect(b.SpringForce(55)).To(BeZero())
		})

		It("is Hookean beyond the resting length", func() {
			Expect(b.SpringForce(54)).To(BeNumerically("~", 40.0, 1e-9))
			Expect(b.SpringForce(45)).To(BeNumerically("~", 400.0, 1e-9))
		})

		It("is continuous at the engagement point", func() {
			Expect(b.SpringForce(55 + 1e-9)).To(BeZero())
			Expect(b.SpringForce(55 - 1e-9)).To(BeNumerically("<", 1e-6))
		})

		It("grows monotonically with further fall", func() {
			prev := b.SpringForce(55)
			for pos := 54.0; pos >= 0; pos-- {
				f := b.SpringForce(pos)
				Expect(f).To(BeNumerically(">", prev))
				prev = f
			}
		})
	})

	Describe("drag force", func() {
		It("vanishes at rest", func() {
			Expect(b.DragForce(0)).To(BeZero())
		})

		It("is an odd function of velocity", func() {
			for _, v := range []float64{0.5, 1, 10, 60} {
				Expect(b.DragForce(-v)).To(Equal(-b.DragForce(v)))
			}
		})

		It("opposes motion in both directions", func() {
			Expect(b.DragForce(-10)).To(BeNumerically(">", 0))
			Expect(b.DragForce(10)).To(BeNumerically("<", 0))
		})
	})

	Describe("derivative", func() {
		It("is free fall before the cord engages", func() {
			dx := b.Derive(dynamo.State{80, 0}, 0)
			Expect(dx[0]).To(BeZero())
			Expect(dx[1]).To(Equal(-9.8))
		})

		It("balances gravity and drag at terminal velocity", func() {
			dx := b.Derive(dynamo.State{70, -60}, 0)
			Expect(dx[0]).To(Equal(-60.0))
			Expect(math.Abs(dx[1])).To(BeNumerically("<", 1e-3*9.8))
		})

		It("includes the cord force once engaged", func() {
			// fallen 35 m, stretch 10 m: 400 N upward on 75 kg
			dx := b.Derive(dynamo.State{45, 0}, 0)
			Expect(dx[1]).To(BeNumerically("~", -9.8+400.0/75.0, 1e-12))
		})
	})

	Describe("energy", func() {
		It("adds spring energy only when the cord is engaged", func() {
			Expect(b.Energy(dynamo.State{60, 0})).To(BeNumerically("~", 75*9.8*60, 1e-9))
			Expect(b.Energy(dynamo.State{45, 0})).To(BeNumerically("~", 75*9.8*45+0.5*40*100, 1e-9))
		})
	})
})

var _ = Describe("Params", func() {
	DescribeTable("validation failures",
		func(mutate func(*physics.Params)) {
			p := classicParams()
			mutate(&p)
			_, err := physics.NewBungee(p)
			Expect(err).To(MatchError(dynamo.ErrInvalidParams))
		},
		Entry("zero mass", func(p *physics.Params) { p.Mass = 0 }),
		Entry("negative mass", func(p *physics.Params) { p.Mass = -1 }),
		Entry("zero area", func(p *physics.Params) { p.Area = 0 }),
		Entry("negative cord length", func(p *physics.Params) { p.CordLength = -1 }),
		Entry("negative spring constant", func(p *physics.Params) { p.SpringConstant = -5 }),
		Entry("negative air density", func(p *physics.Params) { p.AirDensity = -0.1 }),
		Entry("drag without terminal velocity", func(p *physics.Params) { p.TerminalVelocity = 0 }),
	)

	It("derives the drag coefficient from the terminal-velocity balance", func() {
		p := classicParams()
		cd := p.DragCoefficient()
		Expect(p.AirDensity * p.TerminalVelocity * p.TerminalVelocity * cd * p.Area / 2).
			To(BeNumerically("~", p.Mass*p.Gravity, 1e-9))
	})

	It("has zero drag coefficient in vacuum", func() {
		p := classicParams()
		p.AirDensity = 0
		p.TerminalVelocity = 0
		Expect(p.DragCoefficient()).To(BeZero())
	})
})
