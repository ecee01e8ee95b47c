package rotation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Method selects the orientation propagation formula.
type Method int

const (
	// Exact composes the orientation with the exponential map
	// of the angular velocity integrated over the time step.
	Exact Method = iota
	// FirstOrder propagates the orientation with the small-angle
	// linearization (I + dt/2*Omega(w)) of the exact update.
	FirstOrder
)

// small is the rotation angle below which the exponential map and its
// Jacobian switch to their Taylor series.
const small = 1e-8

// Quat returns the quaternion stored in the 4D vector q.
// The vector layout is w, x, y, z.
// It returns error if q is not a 4D vector.
func Quat(q mat.Vector) (quat.Number, error) {
	if q == nil || q.Len() != 4 {
		return quat.Number{}, fmt.Errorf("invalid orientation vector")
	}

	return quat.Number{Real: q.AtVec(0), Imag: q.AtVec(1), Jmag: q.AtVec(2), Kmag: q.AtVec(3)}, nil
}

// Vec returns the quaternion q as a 4D vector in w, x, y, z order.
func Vec(q quat.Number) *mat.VecDense {
	return mat.NewVecDense(4, []float64{q.Real, q.Imag, q.Jmag, q.Kmag})
}

// Exp returns the unit quaternion equivalent to rotating at the angular
// velocity w over the time step dt i.e. the exponential map of w*dt.
// It returns error if w is not a 3D vector.
func Exp(w mat.Vector, dt float64) (quat.Number, error) {
	if w == nil || w.Len() != 3 {
		return quat.Number{}, fmt.Errorf("invalid angular velocity vector")
	}

	vx, vy, vz := w.AtVec(0)*dt, w.AtVec(1)*dt, w.AtVec(2)*dt
	theta := math.Sqrt(vx*vx + vy*vy + vz*vz)

	// c = cos(theta/2), k = sin(theta/2)/theta
	var c, k float64
	if theta < small {
		c = 1 - theta*theta/8
		k = 0.5 - theta*theta/48
	} else {
		c = math.Cos(theta / 2)
		k = math.Sin(theta/2) / theta
	}

	return quat.Number{Real: c, Imag: k * vx, Jmag: k * vy, Kmag: k * vz}, nil
}

// ExpJacobian returns the 4x3 Jacobian of Exp(w, dt) with respect to w.
// It returns error if w is not a 3D vector.
func ExpJacobian(w mat.Vector, dt float64) (*mat.Dense, error) {
	if w == nil || w.Len() != 3 {
		return nil, fmt.Errorf("invalid angular velocity vector")
	}

	v := []float64{w.AtVec(0) * dt, w.AtVec(1) * dt, w.AtVec(2) * dt}
	theta := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])

	// k = sin(theta/2)/theta, a = (cos(theta/2)/2 - k)/theta^2
	var k, a float64
	if theta < small {
		k = 0.5 - theta*theta/48
		a = -1.0 / 24
	} else {
		k = math.Sin(theta/2) / theta
		a = (math.Cos(theta/2)/2 - k) / (theta * theta)
	}

	j := mat.NewDense(4, 3, nil)
	for c := 0; c < 3; c++ {
		j.Set(0, c, -0.5*k*v[c]*dt)
		for r := 0; r < 3; r++ {
			el := a * v[r] * v[c] * dt
			if r == c {
				el += k * dt
			}
			j.Set(r+1, c, el)
		}
	}

	return j, nil
}

// LeftMat returns the 4x4 left product matrix L(q) such that
// the quaternion product q*r equals L(q) applied to r.
func LeftMat(q quat.Number) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		q.Real, -q.Imag, -q.Jmag, -q.Kmag,
		q.Imag, q.Real, -q.Kmag, q.Jmag,
		q.Jmag, q.Kmag, q.Real, -q.Imag,
		q.Kmag, -q.Jmag, q.Imag, q.Real,
	})
}

// RightMat returns the 4x4 right product matrix R(r) such that
// the quaternion product q*r equals R(r) applied to q.
func RightMat(r quat.Number) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		r.Real, -r.Imag, -r.Jmag, -r.Kmag,
		r.Imag, r.Real, r.Kmag, -r.Jmag,
		r.Jmag, -r.Kmag, r.Real, r.Imag,
		r.Kmag, r.Jmag, -r.Imag, r.Real,
	})
}

// Omega returns the 4x4 angular rate matrix of w such that the quaternion
// derivative of a body rotating at w is 0.5*Omega(w) applied to q.
// It returns error if w is not a 3D vector.
func Omega(w mat.Vector) (*mat.Dense, error) {
	if w == nil || w.Len() != 3 {
		return nil, fmt.Errorf("invalid angular velocity vector")
	}

	return RightMat(quat.Number{Imag: w.AtVec(0), Jmag: w.AtVec(1), Kmag: w.AtVec(2)}), nil
}

// Predict returns the orientation of a body that rotates from orientation q
// at constant angular velocity w over the time step dt.
// The quaternion norm of q is not validated: the caller owns that invariant.
// It returns error if q is not a 4D vector, w is not a 3D vector or
// an unsupported method is requested.
func Predict(q, w mat.Vector, dt float64, method Method) (*mat.VecDense, error) {
	qq, err := Quat(q)
	if err != nil {
		return nil, err
	}

	switch method {
	case Exact:
		dq, err := Exp(w, dt)
		if err != nil {
			return nil, err
		}

		return Vec(quat.Mul(qq, dq)), nil
	case FirstOrder:
		om, err := Omega(w)
		if err != nil {
			return nil, err
		}

		prop := mat.NewDense(4, 4, nil)
		prop.Scale(dt/2, om)
		for i := 0; i < 4; i++ {
			prop.Set(i, i, prop.At(i, i)+1)
		}

		out := mat.NewVecDense(4, nil)
		out.MulVec(prop, q)

		return out, nil
	}

	return nil, fmt.Errorf("unsupported method: %v", method)
}

// PredictWithJacobians predicts the orientation with the Exact method and
// additionally returns the Jacobians of the new orientation with respect to
// the old orientation (4x4) and the angular velocity (4x3).
// The predicted orientation is identical to the one returned by Predict
// with the Exact method: both run the same formula.
// It returns error if q is not a 4D vector or w is not a 3D vector.
func PredictWithJacobians(q, w mat.Vector, dt float64) (*mat.VecDense, *mat.Dense, *mat.Dense, error) {
	qq, err := Quat(q)
	if err != nil {
		return nil, nil, nil, err
	}

	dq, err := Exp(w, dt)
	if err != nil {
		return nil, nil, nil, err
	}

	ej, err := ExpJacobian(w, dt)
	if err != nil {
		return nil, nil, nil, err
	}

	// q' = q*dq, so dQ/dq is the right product matrix of dq and
	// dQ/dw chains the left product matrix of q through the exp map
	jq := RightMat(dq)

	jw := mat.NewDense(4, 3, nil)
	jw.Mul(LeftMat(qq), ej)

	return Vec(quat.Mul(qq, dq)), jq, jw, nil
}
