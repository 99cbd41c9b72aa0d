package dataprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"salescli/pkg/contracts/domain"
)

// Narrative thresholds
const (
	// ReviewImpactThreshold is the review/sales correlation above which ratings are said to drive sales
	ReviewImpactThreshold = 0.2
	// LowReviewScore marks products worth improving
	LowReviewScore = 3.0
)

// GenerateInsights derives the narrative findings from the aggregates.
// Categories must be sorted by revenue, highest first.
func GenerateInsights(categories []domain.CategoryPerformance, monthly []domain.MonthlyPoint, corr domain.Correlations) domain.Insights {
	var in domain.Insights

	if len(categories) > 0 {
		top := categories[0]
		in.TopCategory = top.Category
		in.TopCategoryRevenue = top.TotalRevenue
		in.TopCategoryPct = top.RevenuePct
		in.CategoryCount = len(categories)

		counts := make([]float64, len(categories))
		for i, c := range categories {
			counts[i] = float64(c.NumProducts)
		}
		in.AvgProductsPerCategory = stat.Mean(counts, nil)
	}

	if len(monthly) > 0 {
		best, worst := monthly[0], monthly[0]
		units := make([]float64, len(monthly))
		for i, p := range monthly {
			if p.Units > best.Units {
				best = p
			}
			if p.Units < worst.Units {
				worst = p
			}
			units[i] = float64(p.Units)
		}

		in.BestMonth, in.BestMonthUnits = best.Label, best.Units
		in.WorstMonth, in.WorstMonthUnits = worst.Label, worst.Units
		if mean := stat.Mean(units, nil); mean > 0 {
			in.SeasonalVariation = float64(best.Units-worst.Units) / mean * 100
		}
	}

	if corr.PriceVsSales < 0 {
		in.PricingInsight = "Lower prices drive higher volume"
	} else {
		in.PricingInsight = "Premium pricing possible"
	}

	if corr.ReviewVsSales > ReviewImpactThreshold {
		in.ReviewInsight = "Higher rated products sell better"
	} else {
		in.ReviewInsight = "Moderate review impact"
	}

	in.Recommendations = []string{
		fmt.Sprintf("Focus marketing on %s category", in.TopCategory),
		fmt.Sprintf("Prepare inventory for %s peak season", in.BestMonth),
		fmt.Sprintf("Improve products with review scores < %.1f", LowReviewScore),
		"Analyze pricing strategy based on correlation",
		"Monitor seasonal trends for better forecasting",
	}

	return in
}
