// Package render is the presentation sink: it turns aggregated commit
// data into SVG documents and plain-text listings. It validates nothing;
// callers hand it well-formed, non-empty data.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"text/template"

	"commitscope/models"
)

const (
	canvasWidth  = 800
	canvasHeight = 400
)

//go:embed templates/timeline.svg.tmpl
var timelineTemplate string

var timelineTmpl = template.Must(template.New("timeline").Parse(timelineTemplate))

type tick struct {
	X    string
	Y    string
	Text string
}

type timelineViewModel struct {
	Width  int
	Height int
	Title  string

	PlotLeft   string
	PlotRight  string
	PlotTop    string
	PlotBottom string

	Points  string
	XLabels []tick
	YTicks  []tick
}

func fmtCoord(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Timeline renders the weekly density series as a fixed-size line chart,
// x = week label, y = percentage of commits.
func Timeline(series []models.WeekBucket, title string) ([]byte, error) {
	const (
		left   = 55.0
		right  = canvasWidth - 25.0
		top    = 45.0
		bottom = canvasHeight - 55.0
	)
	plotW := right - left
	plotH := bottom - top

	yMax := 5.0
	for _, b := range series {
		if b.Percentage > yMax {
			yMax = b.Percentage
		}
	}
	yMax = math.Ceil(yMax/5) * 5

	var points bytes.Buffer
	for i, b := range series {
		x := left
		if len(series) > 1 {
			x = left + plotW*float64(i)/float64(len(series)-1)
		}
		y := top + plotH*(1-b.Percentage/yMax)
		if i > 0 {
			points.WriteByte(' ')
		}
		fmt.Fprintf(&points, "%s,%s", fmtCoord(x), fmtCoord(y))
	}

	var xLabels []tick
	for i, b := range series {
		if i%8 != 0 && i != len(series)-1 {
			continue
		}
		x := left
		if len(series) > 1 {
			x = left + plotW*float64(i)/float64(len(series)-1)
		}
		xLabels = append(xLabels, tick{X: fmtCoord(x), Text: b.Label})
	}

	var yTicks []tick
	for _, frac := range []float64{0, 0.5, 1} {
		yTicks = append(yTicks, tick{
			Y:    fmtCoord(bottom - plotH*frac),
			Text: fmt.Sprintf("%.0f%%", yMax*frac),
		})
	}

	vm := timelineViewModel{
		Width:      canvasWidth,
		Height:     canvasHeight,
		Title:      title,
		PlotLeft:   fmtCoord(left),
		PlotRight:  fmtCoord(right),
		PlotTop:    fmtCoord(top),
		PlotBottom: fmtCoord(bottom),
		Points:     points.String(),
		XLabels:    xLabels,
		YTicks:     yTicks,
	}

	var buf bytes.Buffer
	if err := timelineTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render timeline svg: %w", err)
	}
	return buf.Bytes(), nil
}
