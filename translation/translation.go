package translation

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Predict returns the position of a body that moves from position p at
// constant linear velocity v over the time step dt.
// It returns error if either p or v is not a 3D vector.
func Predict(p, v mat.Vector, dt float64) (*mat.VecDense, error) {
	if p == nil || p.Len() != 3 {
		return nil, fmt.Errorf("invalid position vector")
	}

	if v == nil || v.Len() != 3 {
		return nil, fmt.Errorf("invalid velocity vector")
	}

	out := mat.NewVecDense(3, nil)
	out.AddScaledVec(p, dt, v)

	return out, nil
}

// PredictWithJacobians predicts the position the same way Predict does and
// additionally returns the Jacobians of the new position with respect to
// the old position (3x3) and the velocity (3x3).
// It returns error if either p or v is not a 3D vector.
func PredictWithJacobians(p, v mat.Vector, dt float64) (*mat.VecDense, *mat.Dense, *mat.Dense, error) {
	out, err := Predict(p, v, dt)
	if err != nil {
		return nil, nil, nil, err
	}

	// position update is affine: dP/dp is identity, dP/dv is dt-scaled identity
	jp, _ := matrix.NewDenseValIdentity(3, 1.0)
	jv, _ := matrix.NewDenseValIdentity(3, dt)

	return out, jp, jv, nil
}
