// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Event]: scalar stopping predicate monitored during a run
//   - [Result]: trajectory plus metrics produced by a run
//
// # Example
//
//	dyn, _ := physics.NewBungee(params)
//	integ := integrators.NewRK4()
//	s := sim.New(dyn, integ)
//	s.SetEvent(sim.VelocityUpcross{})
//	result, _ := s.Run(ctx, dyn.InitialState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For concurrent candidate runs,
// use the sim package's Sweep type, which builds an independent simulator
// per goroutine.
package dynamo
