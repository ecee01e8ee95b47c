package sim

import (
	"fmt"

	motion "github.com/milosgajdos/go-motion"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Rollout simulates the trajectory of a rigid body by propagating the
// initial state x0 through the motion model p over the given number of
// steps of length dt, applying the same control input u at every step.
// A nil u applies no control. It returns a matrix which stores one state
// per row; the first row is x0.
// It returns error if steps is not positive or if the model fails to
// propagate the state.
func Rollout(p motion.Predictor, x0, u mat.Vector, dt float64, steps int) (*mat.Dense, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", steps)
	}

	traj := mat.NewDense(steps+1, x0.Len(), nil)
	traj.SetRow(0, mat.Col(nil, 0, x0))

	x := x0
	for i := 1; i <= steps; i++ {
		xNext, err := p.Predict(x, u, dt)
		if err != nil {
			return nil, fmt.Errorf("failed to propagate state at step %d: %v", i, err)
		}

		traj.SetRow(i, mat.Col(nil, 0, xNext))
		x = xNext
	}

	return traj, nil
}

// RolloutPerturbed simulates the trajectory of a rigid body the same way
// Rollout does but draws the control input of each step from the columns
// of u, e.g. perturbation samples generated by the rand package.
// The number of steps is the number of columns of u.
// It returns error if u is nil or if the model fails to propagate the state.
func RolloutPerturbed(p motion.Predictor, x0 mat.Vector, u *mat.Dense, dt float64) (*mat.Dense, error) {
	if u == nil {
		return nil, fmt.Errorf("invalid control samples")
	}

	_, steps := u.Dims()
	traj := mat.NewDense(steps+1, x0.Len(), nil)
	traj.SetRow(0, mat.Col(nil, 0, x0))

	x := x0
	for i := 1; i <= steps; i++ {
		xNext, err := p.Predict(x, u.ColView(i-1), dt)
		if err != nil {
			return nil, fmt.Errorf("failed to propagate state at step %d: %v", i, err)
		}

		traj.SetRow(i, mat.Col(nil, 0, xNext))
		x = xNext
	}

	return traj, nil
}

// Spread returns the sample covariance of the states stored in the rows
// of the trajectory traj.
// It returns error if traj is nil or if the covariance fails to be calculated.
func Spread(traj *mat.Dense) (mat.Symmetric, error) {
	if traj == nil {
		return nil, fmt.Errorf("invalid trajectory")
	}

	// observations go in columns
	tr := mat.DenseCopyOf(traj.T())

	cov, err := matrix.Cov(tr, "cols")
	if err != nil {
		return nil, fmt.Errorf("failed to calculate trajectory covariance: %v", err)
	}

	return cov, nil
}
