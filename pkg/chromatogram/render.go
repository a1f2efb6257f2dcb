package chromatogram

import (
	"fmt"

	"intellilab-gc-be/pkg/plot"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 960
	defaultHeight = 420
)

// Render draws the trace and labels each named peak at its apex.
func Render(tr Trace, peaks []Peak, format plot.Format, width, height int) ([]byte, error) {
	if len(tr.Time) < 2 {
		return nil, fmt.Errorf("chromatogram: trace has fewer than 2 points")
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Signal",
			XValues: tr.Time,
			YValues: tr.Signal,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("1f4e79"),
				StrokeWidth: 1.5,
			},
		},
	}

	var labels []chart.Value2
	for _, p := range peaks {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("%.2f min", p.RetentionTime)
		}
		labels = append(labels, chart.Value2{XValue: p.RetentionTime, YValue: p.Height, Label: label})
	}
	if len(labels) > 0 {
		series = append(series, chart.AnnotationSeries{Name: "Peaks", Annotations: labels})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: "Retention time (min)"},
		YAxis:  chart.YAxis{Name: "Response"},
		Series: series,
	}
	return plot.Render(graph, format)
}
