package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewTrackPlot(t *testing.T) {
	assert := assert.New(t)

	traj, err := Rollout(m, x0, nil, 0.1, 3)
	assert.NoError(err)

	plt, err := NewTrackPlot(traj)
	assert.NotNil(plt)
	assert.NoError(err)

	plt, err = NewTrackPlot(nil)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTrackPlot(mat.NewDense(3, 2, nil))
	assert.Nil(plt)
	assert.Error(err)
}
