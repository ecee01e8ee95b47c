package rand

import (
	"fmt"
	"math"
	"time"

	rnd "golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Perturbations draws n zero-mean random control perturbation samples with
// covariance cov and returns a matrix which stores one sample per column.
// It is meant for Monte Carlo exercising of motion models: the samples can
// be fed to the model as control inputs i.e. process noise draws.
// It fails with error if n is not positive or if SVD factorization of cov fails.
func Perturbations(cov mat.Symmetric, n int) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid number of samples requested: %d", n)
	}

	// Use SVD instead of Cholesky as Cholesky can be numerically unstable if cov is (almost) singular
	var svd mat.SVD
	ok := svd.Factorize(cov, mat.SVDFull)
	if !ok {
		return nil, fmt.Errorf("SVD factorization failed")
	}

	U := new(mat.Dense)
	svd.UTo(U)
	vals := svd.Values(nil)
	for i := range vals {
		vals[i] = math.Sqrt(vals[i])
	}
	diag := mat.NewDiagDense(len(vals), vals)
	U.Mul(U, diag)

	norm := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rnd.NewSource(uint64(time.Now().UnixNano())),
	}

	rows, _ := cov.Dims()
	data := make([]float64, rows*n)
	for i := range data {
		data[i] = norm.Rand()
	}
	samples := mat.NewDense(rows, n, data)
	samples.Mul(U, samples)

	return samples, nil
}
