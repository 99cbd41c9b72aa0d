package charts

import (
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieChart is a plot.Plotter drawing a pie with one labelled slice per value.
// Slices start at twelve o'clock and run counterclockwise.
type pieChart struct {
	values []float64
	labels []string
	colors []color.RGBA
}

func newPieChart(values []float64, labels []string, colors []color.RGBA) (*pieChart, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("pie chart has no values")
	}
	if len(values) != len(labels) {
		return nil, fmt.Errorf("pie chart has %d values and %d labels", len(values), len(labels))
	}
	var total float64
	for _, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pie chart value %v is not a non-negative number", v)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("pie chart values sum to zero")
	}
	return &pieChart{values: values, labels: labels, colors: colors}, nil
}

// Plot implements plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, p *plot.Plot) {
	var total float64
	for _, v := range pc.values {
		total += v
	}

	center := c.Center()
	size := c.Size()
	radius := vg.Length(math.Min(float64(size.X), float64(size.Y))) / 2 * 0.75

	labelStyle := p.Title.TextStyle
	labelStyle.Font.Size = labelSize
	labelStyle.Font.Weight = xfont.WeightNormal
	labelStyle.XAlign = draw.XCenter
	labelStyle.YAlign = draw.YCenter

	angle := math.Pi / 2
	for i, v := range pc.values {
		sweep := 2 * math.Pi * v / total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, angle, sweep)
		wedge.Close()

		c.SetColor(pc.colors[i%len(pc.colors)])
		c.Fill(wedge)
		c.SetColor(color.White)
		c.SetLineWidth(vg.Points(1))
		c.Stroke(wedge)

		mid := angle + sweep/2
		c.FillText(labelStyle, polar(center, radius*1.15, mid), pc.labels[i])
		c.FillText(labelStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", v/total*100))

		angle += sweep
	}
}

func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(theta)),
		Y: center.Y + r*vg.Length(math.Sin(theta)),
	}
}
