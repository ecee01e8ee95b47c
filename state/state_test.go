package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	p := mat.NewVecDense(3, []float64{1, 2, 3})
	q := mat.NewVecDense(4, []float64{1, 0, 0, 0})
	v := mat.NewVecDense(3, []float64{4, 5, 6})
	w := mat.NewVecDense(3, []float64{7, 8, 9})

	x, err := New(p, q, v, w)
	assert.NotNil(x)
	assert.NoError(err)
	assert.Equal(Size, x.Len())
	assert.Equal([]float64{1, 2, 3, 1, 0, 0, 0, 4, 5, 6, 7, 8, 9}, x.RawVector().Data)

	// invalid block dimensions
	x, err = New(mat.NewVecDense(2, nil), q, v, w)
	assert.Nil(x)
	assert.Error(err)

	x, err = New(p, mat.NewVecDense(3, nil), v, w)
	assert.Nil(x)
	assert.Error(err)

	x, err = New(p, q, nil, w)
	assert.Nil(x)
	assert.Error(err)

	x, err = New(p, q, v, mat.NewVecDense(4, nil))
	assert.Nil(x)
	assert.Error(err)
}

func TestSplit(t *testing.T) {
	assert := assert.New(t)

	x := mat.NewVecDense(Size, []float64{1, 2, 3, 1, 0, 0, 0, 4, 5, 6, 7, 8, 9})

	p, q, v, w, err := Split(x)
	assert.NoError(err)
	assert.Equal([]float64{1, 2, 3}, p.RawVector().Data)
	assert.Equal([]float64{1, 0, 0, 0}, q.RawVector().Data)
	assert.Equal([]float64{4, 5, 6}, v.RawVector().Data)
	assert.Equal([]float64{7, 8, 9}, w.RawVector().Data)

	// blocks must not alias the state vector
	p.SetVec(0, 100.0)
	assert.Equal(1.0, x.AtVec(Pos))

	p, q, v, w, err = Split(mat.NewVecDense(10, nil))
	assert.Nil(p)
	assert.Nil(q)
	assert.Nil(v)
	assert.Nil(w)
	assert.Error(err)

	_, _, _, _, err = Split(nil)
	assert.Error(err)
}

func TestSplitCtrl(t *testing.T) {
	assert := assert.New(t)

	u := mat.NewVecDense(CtrlSize, []float64{1, 2, 3, 4, 5, 6})

	dv, dw, err := SplitCtrl(u)
	assert.NoError(err)
	assert.Equal([]float64{1, 2, 3}, dv.RawVector().Data)
	assert.Equal([]float64{4, 5, 6}, dw.RawVector().Data)

	// nil control is a zero control
	dv, dw, err = SplitCtrl(nil)
	assert.NoError(err)
	assert.Equal([]float64{0, 0, 0}, dv.RawVector().Data)
	assert.Equal([]float64{0, 0, 0}, dw.RawVector().Data)

	dv, dw, err = SplitCtrl(mat.NewVecDense(5, nil))
	assert.Nil(dv)
	assert.Nil(dw)
	assert.Error(err)
}
