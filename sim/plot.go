package sim

import (
	"fmt"
	"image/color"

	"github.com/milosgajdos/go-motion/state"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrackPlot creates a new ground track plot of the simulated trajectory:
// it plots the x and y position block components of every state stored in
// the trajectory rows.
// It returns error if the plot fails to be created. This can be due to either
// of the following conditions:
// * the supplied trajectory matrix is nil
// * the supplied trajectory matrix does not store full state vectors
// * gonum plot fails to be created
func NewTrackPlot(traj *mat.Dense) (*plot.Plot, error) {
	if traj == nil {
		return nil, fmt.Errorf("invalid trajectory")
	}

	_, c := traj.Dims()
	if c != state.Size {
		return nil, fmt.Errorf("invalid trajectory dimensions")
	}

	p := plot.New()

	p.Title.Text = "Ground track"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	track := makeTrack(traj)

	line, err := plotter.NewLine(track)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 255, B: 128, A: 255}

	p.Add(line)
	p.Legend.Add("track", line)

	scatter, err := plotter.NewScatter(track)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	scatter.Shape = draw.CrossGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(scatter)
	p.Legend.Add("states", scatter)

	return p, nil
}

func makeTrack(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, state.Pos)
		pts[i].Y = m.At(i, state.Pos+1)
	}

	return pts
}
