package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"salescli/pkg/contracts/domain"
)

// Figure file names
const (
	CategoryPerformanceFile = "category_performance.png"
	TopProductsFile         = "top_products.png"
	MonthlyTrendsFile       = "monthly_trends.png"
	PriceVsSalesFile        = "price_vs_sales.png"
	ReviewImpactFile        = "review_impact.png"
)

var errNoData = errors.New("no data to plot")

// Figure is one chart image of an analysis
type Figure struct {
	Name   string
	File   string
	Width  vg.Length
	Height vg.Length

	draw func(a *domain.Analysis, dc draw.Canvas) error
}

// Figures returns every figure in rendering order
func Figures() []Figure {
	return []Figure{
		{Name: "category_performance", File: CategoryPerformanceFile, Width: 16 * vg.Inch, Height: 6 * vg.Inch, draw: drawCategoryPerformance},
		{Name: "top_products", File: TopProductsFile, Width: 12 * vg.Inch, Height: 8 * vg.Inch, draw: drawTopProducts},
		{Name: "monthly_trends", File: MonthlyTrendsFile, Width: 14 * vg.Inch, Height: 10 * vg.Inch, draw: drawMonthlyTrends},
		{Name: "price_vs_sales", File: PriceVsSalesFile, Width: 12 * vg.Inch, Height: 6 * vg.Inch, draw: drawPriceVsSales},
		{Name: "review_impact", File: ReviewImpactFile, Width: 10 * vg.Inch, Height: 6 * vg.Inch, draw: drawReviewImpact},
	}
}

// barWidth shrinks bars as their number grows
func barWidth(n int) vg.Length {
	return vg.Points(math.Min(48, 360/float64(max(n, 1))))
}

func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// drawCategoryPerformance draws revenue by category next to its distribution
func drawCategoryPerformance(a *domain.Analysis, dc draw.Canvas) error {
	if len(a.Categories) == 0 {
		return errNoData
	}

	names := make([]string, len(a.Categories))
	revenue := make(plotter.Values, len(a.Categories))
	for i, c := range a.Categories {
		names[i] = c.Category
		revenue[i] = c.TotalRevenue
	}

	barPlot := newPlot("Revenue by Category", "Category", "Revenue ($)")
	bars, err := plotter.NewBarChart(revenue, barWidth(len(revenue)))
	if err != nil {
		return fmt.Errorf("revenue bars: %w", err)
	}
	bars.Color = CategoryBarColor
	bars.LineStyle.Width = 0
	barPlot.Add(lightGrid(false, true), bars)
	barPlot.NominalX(names...)
	rotateXTicks(barPlot)
	barPlot.Y.Tick.Marker = moneyTicks{}

	piePlot := newPlot("Revenue Distribution by Category", "", "")
	piePlot.HideAxes()
	pie, err := newPieChart(revenue, names, piePalette)
	if err != nil {
		return fmt.Errorf("revenue pie: %w", err)
	}
	piePlot.Add(pie)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Inch / 2,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
	}
	plots := [][]*plot.Plot{{barPlot, piePlot}}
	canvases := plot.Align(plots, tiles, dc)
	barPlot.Draw(canvases[0][0])
	piePlot.Draw(canvases[0][1])
	return nil
}

// drawTopProducts draws horizontal revenue bars, the highest on top
func drawTopProducts(a *domain.Analysis, dc draw.Canvas) error {
	n := len(a.TopProducts)
	if n == 0 {
		return errNoData
	}

	names := make([]string, n)
	revenue := make(plotter.Values, n)
	for i, p := range a.TopProducts {
		names[n-1-i] = p.ProductName
		revenue[n-1-i] = p.TotalRevenue
	}

	p := newPlot(fmt.Sprintf("Top %d Products by Revenue", n), "Total Revenue ($)", "")
	bars, err := plotter.NewBarChart(revenue, barWidth(n))
	if err != nil {
		return fmt.Errorf("product bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = TopProductColor
	bars.LineStyle.Width = 0
	p.Add(lightGrid(true, false), bars)
	p.NominalY(names...)
	p.X.Tick.Marker = moneyTicks{}

	p.Draw(dc)
	return nil
}

// drawMonthlyTrends stacks the unit and revenue trends
func drawMonthlyTrends(a *domain.Analysis, dc draw.Canvas) error {
	if len(a.Monthly) == 0 {
		return errNoData
	}

	units := make(plotter.XYs, len(a.Monthly))
	revenue := make(plotter.XYs, len(a.Monthly))
	ticks := make(plot.ConstantTicks, len(a.Monthly))
	for i, m := range a.Monthly {
		units[i] = plotter.XY{X: float64(m.Month), Y: float64(m.Units)}
		revenue[i] = plotter.XY{X: float64(m.Month), Y: m.Revenue}
		ticks[i] = plot.Tick{Value: float64(m.Month), Label: m.Label}
	}

	unitPlot, err := trendPlot("Monthly Sales Trend (Units)", "Units Sold", units, UnitsLineColor, ticks)
	if err != nil {
		return fmt.Errorf("units trend: %w", err)
	}
	revenuePlot, err := trendPlot("Monthly Revenue Trend", "Revenue ($)", revenue, RevenueLineColor, ticks)
	if err != nil {
		return fmt.Errorf("revenue trend: %w", err)
	}
	revenuePlot.Y.Tick.Marker = moneyTicks{}

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadY:      vg.Inch / 3,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
	}
	canvases := plot.Align([][]*plot.Plot{{unitPlot}, {revenuePlot}}, tiles, dc)
	unitPlot.Draw(canvases[0][0])
	revenuePlot.Draw(canvases[1][0])
	return nil
}

func trendPlot(title, yLabel string, xys plotter.XYs, c color.RGBA, ticks plot.ConstantTicks) (*plot.Plot, error) {
	p := newPlot(title, "Month", yLabel)

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(2)
	points.Color = c
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(3)

	p.Add(lightGrid(true, true), line, points)
	p.X.Tick.Marker = ticks
	return p, nil
}

// drawPriceVsSales scatters price against units, one series per category
func drawPriceVsSales(a *domain.Analysis, dc draw.Canvas) error {
	if len(a.Products) == 0 {
		return errNoData
	}

	byCategory := make(map[string]plotter.XYs)
	for _, p := range a.Products {
		byCategory[p.Category] = append(byCategory[p.Category], plotter.XY{X: p.Price, Y: float64(p.TotalSales)})
	}

	p := newPlot("Price vs Total Sales by Category", "Price ($)", "Total Sales (Units)")
	p.Add(lightGrid(true, true))
	p.Legend.Top = true

	for i, category := range a.CategoryOrder {
		xys, ok := byCategory[category]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter %s: %w", category, err)
		}
		s.Color = withAlpha(scatterPalette[i%len(scatterPalette)], scatterAlpha)
		s.Shape = draw.CircleGlyph{}
		s.Radius = vg.Points(3.5)
		p.Add(s)
		p.Legend.Add(category, s)
	}

	p.Draw(dc)
	return nil
}

// drawReviewImpact draws the mean total sales per review bin; with no
// binned products only the frame is drawn
func drawReviewImpact(a *domain.Analysis, dc draw.Canvas) error {
	p := newPlot("Average Sales by Review Score", "Review Score Range", "Average Total Sales")

	if len(a.ReviewBins) > 0 {
		names := make([]string, len(a.ReviewBins))
		sales := make(plotter.Values, len(a.ReviewBins))
		for i, b := range a.ReviewBins {
			names[i] = b.Label
			sales[i] = b.AvgTotalSales
		}

		bars, err := plotter.NewBarChart(sales, barWidth(len(sales)))
		if err != nil {
			return fmt.Errorf("review bars: %w", err)
		}
		bars.Color = ReviewBarColor
		bars.LineStyle.Width = 0
		p.Add(lightGrid(false, true), bars)
		p.NominalX(names...)
		rotateXTicks(p)
	}

	p.Draw(dc)
	return nil
}
