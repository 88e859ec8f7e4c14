package numerics

import (
	"time"

	"github.com/notargets/avs/chart2d"
	avsutils "github.com/notargets/avs/utils"
)

// CpChart is an optional, debug-only line plot of a chordwise pressure
// distribution (or any scalar vs. position series). It has nothing to do
// with the mandatory per-step SurfaceWriter logging path (§4.12/§6) — it is
// a human-in-the-loop diagnostic window, wired up behind the CLI's --graph
// flag. Adapted from the teacher's utils.LineChart (utils/graphics.go).
type CpChart struct {
	chart    *chart2d.Chart2D
	colorMap *avsutils.ColorMap
}

// NewCpChart opens a plotting window spanning [xmin,xmax] x [fmin,fmax].
func NewCpChart(width, height int, xmin, xmax, fmin, fmax float64) *CpChart {
	c := &CpChart{
		chart:    chart2d.NewChart2D(width, height, float32(xmin), float32(xmax), float32(fmin), float32(fmax)),
		colorMap: avsutils.NewColorMap(-1, 1, 1),
	}
	go c.chart.Plot()
	return c
}

// Plot adds one named series (x, f) to the chart, colored along [-1,1], and
// pauses for graphDelay so an interactive viewer can keep up with a running
// solve.
func (c *CpChart) Plot(graphDelay time.Duration, x, f []float64, lineColor float64, name string) {
	if err := c.chart.AddSeries(name, x, f, chart2d.NoGlyph, chart2d.Solid, c.colorMap.GetRGB(float32(lineColor))); err != nil {
		panic("numerics: unable to add chart series")
	}
	time.Sleep(graphDelay)
}
