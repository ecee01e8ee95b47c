package cv

import (
	"fmt"

	filter "github.com/milosgajdos/go-estimate"
	motion "github.com/milosgajdos/go-motion"
	"github.com/milosgajdos/go-motion/rotation"
	"github.com/milosgajdos/go-motion/state"
	"github.com/milosgajdos/go-motion/translation"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Step advances the rigid body state x by one time step dt using the
// constant velocity motion model. The control u perturbs the linear and
// angular velocities before the position and orientation updates consume
// them; a nil u applies no perturbation.
// Step is a pure function: x and u are left untouched and it is safe to
// call concurrently with independent inputs.
// It returns error if x is not a valid state vector or u is not a valid
// control vector.
func Step(x, u mat.Vector, dt float64) (*mat.VecDense, error) {
	p, q, v, w, err := state.Split(x)
	if err != nil {
		return nil, err
	}

	dv, dw, err := state.SplitCtrl(u)
	if err != nil {
		return nil, err
	}

	// velocities are perturbed first so the predicted pose consumes them
	v.AddVec(v, dv)
	w.AddVec(w, dw)

	pNext, err := translation.Predict(p, v, dt)
	if err != nil {
		return nil, err
	}

	qNext, err := rotation.Predict(q, w, dt, rotation.Exact)
	if err != nil {
		return nil, err
	}

	return state.New(pNext, qNext, v, w)
}

// StepWithJacobians advances the state the same way Step does and
// additionally returns the Jacobians of the new state with respect to the
// old state (13x13) and the control (13x6).
// The returned state is identical to the one returned by Step: both run
// the same position and orientation formulas.
// It returns error if x is not a valid state vector or u is not a valid
// control vector.
func StepWithJacobians(x, u mat.Vector, dt float64) (*mat.VecDense, *mat.Dense, *mat.Dense, error) {
	p, q, v, w, err := state.Split(x)
	if err != nil {
		return nil, nil, nil, err
	}

	dv, dw, err := state.SplitCtrl(u)
	if err != nil {
		return nil, nil, nil, err
	}

	v.AddVec(v, dv)
	w.AddVec(w, dw)

	pNext, jp, jv, err := translation.PredictWithJacobians(p, v, dt)
	if err != nil {
		return nil, nil, nil, err
	}

	qNext, jq, jw, err := rotation.PredictWithJacobians(q, w, dt)
	if err != nil {
		return nil, nil, nil, err
	}

	xNext, err := state.New(pNext, qNext, v, w)
	if err != nil {
		return nil, nil, nil, err
	}

	eye, _ := matrix.NewDenseValIdentity(3, 1.0)

	// state Jacobian: pose blocks from the collaborators, velocity blocks
	// are identity since the velocity update is a plain addition
	fx := mat.NewDense(state.Size, state.Size, nil)
	fx.Slice(state.Pos, state.Ori, state.Pos, state.Ori).(*mat.Dense).Copy(jp)
	fx.Slice(state.Pos, state.Ori, state.Vel, state.Ang).(*mat.Dense).Copy(jv)
	fx.Slice(state.Ori, state.Vel, state.Ori, state.Vel).(*mat.Dense).Copy(jq)
	fx.Slice(state.Ori, state.Vel, state.Ang, state.Size).(*mat.Dense).Copy(jw)
	fx.Slice(state.Vel, state.Ang, state.Vel, state.Ang).(*mat.Dense).Copy(eye)
	fx.Slice(state.Ang, state.Size, state.Ang, state.Size).(*mat.Dense).Copy(eye)

	// control Jacobian: the deltas perturb the velocities before the pose
	// update consumes them over dt, so the pose blocks pick up a dt factor
	jvdt := mat.NewDense(3, 3, nil)
	jvdt.Scale(dt, jv)
	jwdt := mat.NewDense(4, 3, nil)
	jwdt.Scale(dt, jw)

	fu := mat.NewDense(state.Size, state.CtrlSize, nil)
	fu.Slice(state.Pos, state.Ori, state.CtrlVel, state.CtrlAng).(*mat.Dense).Copy(jvdt)
	fu.Slice(state.Ori, state.Vel, state.CtrlAng, state.CtrlSize).(*mat.Dense).Copy(jwdt)
	fu.Slice(state.Vel, state.Ang, state.CtrlVel, state.CtrlAng).(*mat.Dense).Copy(eye)
	fu.Slice(state.Ang, state.Size, state.CtrlAng, state.CtrlSize).(*mat.Dense).Copy(eye)

	return xNext, fx, fu, nil
}

// Model is a constant velocity motion model with a fixed time step.
// It implements motion.Model as well as the go-estimate filter.Model
// interface which lets it drive go-estimate filters: the model output
// observed by the filter is the position block, i.e. a position fix.
type Model struct {
	// dt is the model time step
	dt float64
}

var (
	_ motion.Model = (*Model)(nil)
	_ filter.Model = (*Model)(nil)
)

// New creates a new constant velocity model with time step dt and returns it.
// It returns error if dt is negative.
func New(dt float64) (*Model, error) {
	if dt < 0 {
		return nil, fmt.Errorf("invalid time step: %v", dt)
	}

	return &Model{dt: dt}, nil
}

// Predict propagates the state x over dt given the control input u.
func (m *Model) Predict(x, u mat.Vector, dt float64) (mat.Vector, error) {
	return Step(x, u, dt)
}

// Linearize propagates the state x over dt given the control input u and
// returns the propagated state together with its state and control Jacobians.
func (m *Model) Linearize(x, u mat.Vector, dt float64) (mat.Vector, *mat.Dense, *mat.Dense, error) {
	return StepWithJacobians(x, u, dt)
}

// Propagate propagates the state x over the model time step given the
// control input u and adds the process noise sample q to the result.
func (m *Model) Propagate(x, u, q mat.Vector) (mat.Vector, error) {
	out, err := Step(x, u, m.dt)
	if err != nil {
		return nil, err
	}

	if q != nil && q.Len() == state.Size {
		out.AddVec(out, q)
	}

	return out, nil
}

// Observe returns the model output given the state x: the position block
// of x with the measurement noise sample r added to it.
func (m *Model) Observe(x, u, r mat.Vector) (mat.Vector, error) {
	p, _, _, _, err := state.Split(x)
	if err != nil {
		return nil, err
	}

	if r != nil && r.Len() == 3 {
		p.AddVec(p, r)
	}

	return p, nil
}

// Dims returns state and control dimensions of the model.
func (m *Model) Dims() (nx, nu int) {
	return state.Size, state.CtrlSize
}

// SystemDims returns state, input, output and disturbance dimensions.
func (m *Model) SystemDims() (nx, nu, ny, nz int) {
	return state.Size, state.CtrlSize, 3, state.Size
}

// TimeStep returns the model time step.
func (m *Model) TimeStep() float64 {
	return m.dt
}
