package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestPerturbations(t *testing.T) {
	assert := assert.New(t)

	data := []float64{
		0.01, 0, 0, 0, 0, 0,
		0, 0.01, 0, 0, 0, 0,
		0, 0, 0.01, 0, 0, 0,
		0, 0, 0, 0.001, 0, 0,
		0, 0, 0, 0, 0.001, 0,
		0, 0, 0, 0, 0, 0.001,
	}
	cov := mat.NewSymDense(6, data)
	covR, _ := cov.Dims()

	// n must be positive
	samples, err := Perturbations(cov, -3)
	assert.Error(err)
	assert.Nil(samples)

	samples, err = Perturbations(cov, 0)
	assert.Error(err)
	assert.Nil(samples)

	// one sample per column
	n := 10
	samples, err = Perturbations(cov, n)
	assert.NoError(err)
	assert.NotNil(samples)
	r, c := samples.Dims()
	assert.Equal(covR, r)
	assert.Equal(n, c)

	// zero covariance draws zero perturbations
	samples, err = Perturbations(mat.NewSymDense(6, nil), 3)
	assert.NoError(err)
	assert.True(mat.Equal(mat.NewDense(6, 3, nil), samples))
}
