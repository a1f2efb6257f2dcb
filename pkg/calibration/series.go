package calibration

import (
	"fmt"
	"math"
	"sort"

	"intellilab-gc-be/pkg/plot"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series holds everything the calibration chart draws.
type Series struct {
	Observed   []XY `json:"observed"`
	Regression []XY `json:"regression"`
	Residuals  []XY `json:"residuals"`
	LODMarker  XY   `json:"lod_marker"`
	LOQMarker  XY   `json:"loq_marker"`
}

const regressionSamples = 50

// BuildSeries uses valid points only; residuals are observed minus predicted.
func BuildSeries(points []Point, res Result) Series {
	valid := ValidPoints(points)
	s := Series{
		Observed:   make([]XY, 0, len(valid)),
		Regression: make([]XY, 0, regressionSamples),
		Residuals:  make([]XY, 0, len(valid)),
	}
	if len(valid) == 0 {
		return s
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range valid {
		s.Observed = append(s.Observed, XY{X: p.Concentration, Y: p.Area})
		s.Residuals = append(s.Residuals, XY{X: p.Concentration, Y: p.Area - res.Predict(p.Concentration)})
		lo = math.Min(lo, p.Concentration)
		hi = math.Max(hi, p.Concentration)
	}
	sort.SliceStable(s.Observed, func(i, j int) bool { return s.Observed[i].X < s.Observed[j].X })

	if res.LOD > 0 {
		lo = math.Min(lo, res.LOD)
	}
	if res.LOQ > hi {
		hi = res.LOQ
	}
	step := (hi - lo) / float64(regressionSamples-1)
	for i := 0; i < regressionSamples; i++ {
		x := lo + float64(i)*step
		s.Regression = append(s.Regression, XY{X: x, Y: res.Predict(x)})
	}

	s.LODMarker = XY{X: res.LOD, Y: res.Predict(res.LOD)}
	s.LOQMarker = XY{X: res.LOQ, Y: res.Predict(res.LOQ)}
	return s
}

func split(xy []XY) (xs, ys []float64) {
	xs = make([]float64, len(xy))
	ys = make([]float64, len(xy))
	for i, p := range xy {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func markerLine(name string, x, yMax float64, col drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x, x},
		YValues: []float64{0, yMax},
		Style: chart.Style{
			StrokeColor:     col,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5, 4},
		},
	}
}

// RenderPlot draws the calibration curve with LOD/LOQ markers.
func RenderPlot(s Series, res Result, format plot.Format) ([]byte, error) {
	if len(s.Observed) < 2 {
		return nil, fmt.Errorf("calibration: need at least 2 observed points to plot")
	}

	ox, oy := split(s.Observed)
	rx, ry := split(s.Regression)
	yMax := 0.0
	for _, y := range append(oy, ry...) {
		yMax = math.Max(yMax, y)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Observed",
			XValues: ox,
			YValues: oy,
			Style: chart.Style{
				StrokeWidth: 0,
				DotWidth:    4,
				DotColor:    drawing.ColorFromHex("1f77b4"),
			},
		},
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("Fit (R²=%.4f)", res.RSquared),
			XValues: rx,
			YValues: ry,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("ff7f0e"),
				StrokeWidth: 2,
			},
		},
	}
	if res.LOD > 0 {
		series = append(series, markerLine(fmt.Sprintf("LOD %.4g", res.LOD), res.LOD, yMax, drawing.ColorFromHex("d62728")))
	}
	if res.LOQ > 0 {
		series = append(series, markerLine(fmt.Sprintf("LOQ %.4g", res.LOQ), res.LOQ, yMax, drawing.ColorFromHex("2ca02c")))
	}

	graph := chart.Chart{
		Title:  "Calibration curve",
		Width:  800,
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: "Concentration"},
		YAxis:  chart.YAxis{Name: "Peak area"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return plot.Render(graph, format)
}
