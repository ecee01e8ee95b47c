package motion

import "gonum.org/v1/gonum/mat"

// Predictor advances the state of a rigid body to the next time step.
type Predictor interface {
	// Predict returns the state propagated over the time step dt
	// given the control input u
	Predict(x, u mat.Vector, dt float64) (mat.Vector, error)
}

// Linearizer propagates the state and calculates the Jacobians of the
// propagated state with respect to the previous state and the control input
type Linearizer interface {
	// Linearize returns the propagated state together with its
	// state and control Jacobians
	Linearize(x, u mat.Vector, dt float64) (mat.Vector, *mat.Dense, *mat.Dense, error)
}

// Model is a kinematic motion model of a rigid body
type Model interface {
	// Predictor propagates the state of the body
	Predictor
	// Linearizer linearizes the motion around the state
	Linearizer
	// Dims returns state and control dimensions of the model
	Dims() (nx int, nu int)
}
