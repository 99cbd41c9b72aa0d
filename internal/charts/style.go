package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var printer = message.NewPrinter(language.English)

// Figure colours
var (
	CategoryBarColor = mustHex("#2E86AB")
	TopProductColor  = mustHex("#06A77D")
	UnitsLineColor   = mustHex("#E63946")
	RevenueLineColor = mustHex("#2A9D8F")
	ReviewBarColor   = mustHex("#F4A261")
)

// piePalette colours the revenue distribution slices
var piePalette = hexPalette("#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3", "#A6D854", "#FFD92F", "#E5C494", "#B3B3B3")

// scatterPalette colours one price/sales series per category
var scatterPalette = hexPalette("#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD", "#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF")

const (
	titleSize = vg.Length(14)
	labelSize = vg.Length(11)
	tickSize  = vg.Length(9)
	// scatterAlpha matches a 0.6 opacity
	scatterAlpha = 153
)

// parseHex parses #RRGGBB
func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func mustHex(s string) color.RGBA {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexPalette(colors ...string) []color.RGBA {
	out := make([]color.RGBA, len(colors))
	for i, c := range colors {
		out[i] = mustHex(c)
	}
	return out
}

// withAlpha returns c with the given non-premultiplied opacity
func withAlpha(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// newPlot returns a plot with a bold title and labelled axes
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	p.Title.Text = title
	p.Title.TextStyle.Font.Size = titleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(8)

	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = labelSize
	p.Y.Label.TextStyle.Font.Size = labelSize
	p.X.Tick.Label.Font.Size = tickSize
	p.Y.Tick.Label.Font.Size = tickSize

	return p
}

// lightGrid returns grid lines drawn at 30% opacity
func lightGrid(vertical, horizontal bool) *plotter.Grid {
	g := plotter.NewGrid()
	faint := color.NRGBA{A: 77}
	g.Vertical.Color = nil
	g.Horizontal.Color = nil
	if vertical {
		g.Vertical.Color = faint
	}
	if horizontal {
		g.Horizontal.Color = faint
	}
	return g
}

// moneyTicks labels an axis with thousands separators
type moneyTicks struct{}

func (moneyTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = printer.Sprintf("%.0f", ticks[i].Value)
		}
	}
	return ticks
}
