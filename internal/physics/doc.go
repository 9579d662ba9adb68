// Package physics provides the bungee jump dynamics model.
//
// [Bungee] implements the [dynamo.System] interface, defining the
// differential equations governing a jumper falling from a fixed attachment
// point on an elastic cord:
//
//	d pos/dt = vel
//	d vel/dt = -g + drag(vel)/m + spring(pos)/m
//
// The cord is slack (zero force) until the fallen distance exceeds its
// resting length, then Hookean. Drag is quadratic in speed and always
// opposes motion; its coefficient is derived once from the configured
// terminal velocity via the force balance drag = gravity.
//
// Bungee also implements [dynamo.Hamiltonian], so energy dissipated by drag
// can be monitored over a trajectory.
package physics
