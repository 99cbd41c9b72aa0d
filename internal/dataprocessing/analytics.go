package dataprocessing

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"salescli/pkg/contracts/domain"
)

// Derive fills the total_sales, avg_monthly_sales and total_revenue columns in place
func Derive(products []domain.ProductSales) {
	for i := range products {
		p := &products[i]
		total := 0
		for _, units := range p.MonthlySales {
			total += units
		}
		p.TotalSales = total
		if len(p.MonthlySales) > 0 {
			p.AvgMonthlySales = float64(total) / float64(len(p.MonthlySales))
		}
		p.TotalRevenue = float64(total) * p.Price
	}
}

// ComputeKeyMetrics returns the headline numbers of derived products
func ComputeKeyMetrics(products []domain.ProductSales) domain.KeyMetrics {
	m := domain.KeyMetrics{
		TotalProducts:   len(products),
		TotalCategories: len(CategoryOrder(products)),
	}
	if len(products) == 0 {
		return m
	}

	prices := make([]float64, len(products))
	revenues := make([]float64, len(products))
	averages := make([]float64, len(products))
	for i, p := range products {
		m.TotalUnits += p.TotalSales
		prices[i] = p.Price
		revenues[i] = p.TotalRevenue
		averages[i] = p.AvgMonthlySales
	}

	m.TotalRevenue = floats.Sum(revenues)
	m.AveragePrice = stat.Mean(prices, nil)
	m.AverageMonthlySales = stat.Mean(averages, nil)
	return m
}

// CategoryOrder returns the distinct categories in order of first appearance
func CategoryOrder(products []domain.ProductSales) []string {
	seen := make(map[string]bool)
	var order []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			order = append(order, p.Category)
		}
	}
	return order
}

// CategoryPerformance groups derived products by category. Values are rounded
// to two decimals and rows are sorted by revenue, highest first, then by name.
func CategoryPerformance(products []domain.ProductSales) []domain.CategoryPerformance {
	type group struct {
		units           int
		revenue         float64
		prices, reviews []float64
	}

	groups := make(map[string]*group)
	for _, p := range products {
		g, ok := groups[p.Category]
		if !ok {
			g = &group{}
			groups[p.Category] = g
		}
		g.units += p.TotalSales
		g.revenue += p.TotalRevenue
		g.prices = append(g.prices, p.Price)
		g.reviews = append(g.reviews, p.ReviewScore)
	}

	result := make([]domain.CategoryPerformance, 0, len(groups))
	var total float64
	for name, g := range groups {
		row := domain.CategoryPerformance{
			Category:     name,
			NumProducts:  len(g.prices),
			TotalUnits:   g.units,
			TotalRevenue: round(g.revenue, 2),
			AvgPrice:     round(stat.Mean(g.prices, nil), 2),
			AvgReview:    round(stat.Mean(g.reviews, nil), 2),
		}
		total += row.TotalRevenue
		result = append(result, row)
	}

	slices.SortFunc(result, func(a, b domain.CategoryPerformance) int {
		if c := cmp.Compare(b.TotalRevenue, a.TotalRevenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	if total > 0 {
		for i := range result {
			result[i].RevenuePct = round(result[i].TotalRevenue/total*100, 2)
		}
	}
	return result
}

// TopProducts returns the min(n, len(products)) highest-revenue products,
// highest first. Ties keep their input order.
func TopProducts(products []domain.ProductSales, n int) []domain.ProductRevenue {
	if n <= 0 {
		return []domain.ProductRevenue{}
	}

	ranked := make([]domain.ProductRevenue, len(products))
	for i, p := range products {
		ranked[i] = domain.ProductRevenue{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Category:     p.Category,
			TotalSales:   p.TotalSales,
			TotalRevenue: p.TotalRevenue,
			Price:        p.Price,
			ReviewScore:  p.ReviewScore,
		}
	}

	slices.SortStableFunc(ranked, func(a, b domain.ProductRevenue) int {
		return cmp.Compare(b.TotalRevenue, a.TotalRevenue)
	})

	return ranked[:min(n, len(ranked))]
}

// monthCount is the number of month columns of the table
func monthCount(products []domain.ProductSales) int {
	months := 0
	for _, p := range products {
		months = max(months, len(p.MonthlySales))
	}
	return months
}

// MonthlySales sums unit sales per month column
func MonthlySales(products []domain.ProductSales) []int {
	units := make([]int, monthCount(products))
	for _, p := range products {
		for m, v := range p.MonthlySales {
			units[m] += v
		}
	}
	return units
}

// MonthlyRevenue is the dot product of each month column with the price column
func MonthlyRevenue(products []domain.ProductSales) []float64 {
	months := monthCount(products)
	prices := make([]float64, len(products))
	for i, p := range products {
		prices[i] = p.Price
	}

	revenue := make([]float64, months)
	column := make([]float64, len(products))
	for m := 0; m < months; m++ {
		for i, p := range products {
			column[i] = 0
			if m < len(p.MonthlySales) {
				column[i] = float64(p.MonthlySales[m])
			}
		}
		revenue[m] = floats.Dot(column, prices)
	}
	return revenue
}

// MonthLabel names month column m (1-based) in reports and charts
func MonthLabel(m int) string {
	return fmt.Sprintf("Month %d", m)
}

// Monthly combines MonthlySales and MonthlyRevenue into labelled points
func Monthly(products []domain.ProductSales) []domain.MonthlyPoint {
	units := MonthlySales(products)
	revenue := MonthlyRevenue(products)

	points := make([]domain.MonthlyPoint, len(units))
	for i := range units {
		points[i] = domain.MonthlyPoint{
			Month:   i + 1,
			Label:   MonthLabel(i + 1),
			Units:   units[i],
			Revenue: revenue[i],
		}
	}
	return points
}

// Correlation returns the Pearson correlation of x and y clamped to [-1, 1].
// ok is false, and the value 0, when it is undefined: fewer than two pairs,
// mismatched lengths or a constant series.
func Correlation(x, y []float64) (float64, bool) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, false
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, false
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return math.Max(-1, math.Min(1, r)), true
}

// Correlations relates price and review score to total unit sales
func Correlations(products []domain.ProductSales) domain.Correlations {
	prices := make([]float64, len(products))
	reviews := make([]float64, len(products))
	sales := make([]float64, len(products))
	for i, p := range products {
		prices[i] = p.Price
		reviews[i] = p.ReviewScore
		sales[i] = float64(p.TotalSales)
	}

	var c domain.Correlations
	c.PriceVsSales, c.PriceDefined = Correlation(prices, sales)
	c.ReviewVsSales, c.ReviewDefined = Correlation(reviews, sales)
	return c
}

// reviewBins are the review score ranges; the lower bound is exclusive
var reviewBins = []domain.ReviewBin{
	{Label: "Poor (0-2)", Lower: 0, Upper: 2},
	{Label: "Fair (2-3)", Lower: 2, Upper: 3},
	{Label: "Good (3-4)", Lower: 3, Upper: 4},
	{Label: "Excellent (4-5)", Lower: 4, Upper: 5},
}

// ReviewBins returns the mean total sales of each non-empty review bin, in bin order.
// A review score of exactly 0 falls in no bin.
func ReviewBins(products []domain.ProductSales) []domain.ReviewBin {
	sales := make([][]float64, len(reviewBins))
	for _, p := range products {
		for i, bin := range reviewBins {
			if p.ReviewScore > bin.Lower && p.ReviewScore <= bin.Upper {
				sales[i] = append(sales[i], float64(p.TotalSales))
				break
			}
		}
	}

	var result []domain.ReviewBin
	for i, bin := range reviewBins {
		if len(sales[i]) == 0 {
			continue
		}
		bin.Products = len(sales[i])
		bin.AvgTotalSales = stat.Mean(sales[i], nil)
		result = append(result, bin)
	}
	return result
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
