package state

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Size is the number of scalars in the rigid body state vector.
const Size = 13

// CtrlSize is the number of scalars in the control vector.
const CtrlSize = 6

// Block offsets into the state vector, in block order:
// position (3), orientation quaternion (4), linear velocity (3), angular velocity (3).
const (
	Pos = 0
	Ori = 3
	Vel = 7
	Ang = 10
)

// Block offsets into the control vector:
// linear velocity delta (3), angular velocity delta (3).
const (
	CtrlVel = 0
	CtrlAng = 3
)

// New creates a new state vector from its blocks and returns it.
// It returns error if either of the blocks has invalid dimension.
func New(p, q, v, w mat.Vector) (*mat.VecDense, error) {
	if p == nil || p.Len() != 3 {
		return nil, fmt.Errorf("invalid position vector")
	}

	if q == nil || q.Len() != 4 {
		return nil, fmt.Errorf("invalid orientation vector")
	}

	if v == nil || v.Len() != 3 {
		return nil, fmt.Errorf("invalid linear velocity vector")
	}

	if w == nil || w.Len() != 3 {
		return nil, fmt.Errorf("invalid angular velocity vector")
	}

	x := mat.NewVecDense(Size, nil)
	setBlock(x, Pos, p)
	setBlock(x, Ori, q)
	setBlock(x, Vel, v)
	setBlock(x, Ang, w)

	return x, nil
}

// Split decomposes the state vector x into its position, orientation,
// linear velocity and angular velocity blocks.
// The returned vectors are copies: mutating them does not alias x.
// It returns error if x does not have exactly Size elements.
func Split(x mat.Vector) (p, q, v, w *mat.VecDense, err error) {
	if x == nil || x.Len() != Size {
		return nil, nil, nil, nil, fmt.Errorf("invalid state vector")
	}

	return block(x, Pos, 3), block(x, Ori, 4), block(x, Vel, 3), block(x, Ang, 3), nil
}

// SplitCtrl decomposes the control vector u into its linear velocity delta
// and angular velocity delta blocks. A nil control is valid and yields zero deltas.
// It returns error if a non-nil u does not have exactly CtrlSize elements.
func SplitCtrl(u mat.Vector) (dv, dw *mat.VecDense, err error) {
	if u == nil {
		return mat.NewVecDense(3, nil), mat.NewVecDense(3, nil), nil
	}

	if u.Len() != CtrlSize {
		return nil, nil, fmt.Errorf("invalid control vector")
	}

	return block(u, CtrlVel, 3), block(u, CtrlAng, 3), nil
}

func block(x mat.Vector, off, n int) *mat.VecDense {
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, x.AtVec(off+i))
	}

	return out
}

func setBlock(x *mat.VecDense, off int, b mat.Vector) {
	for i := 0; i < b.Len(); i++ {
		x.SetVec(off+i, b.AtVec(i))
	}
}
