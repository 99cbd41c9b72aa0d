package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salescli/pkg/contracts/domain"
)

func TestGenerateInsights_Sample(t *testing.T) {
	products := derivedSample()
	in := GenerateInsights(CategoryPerformance(products), Monthly(products), Correlations(products))

	assert.Equal(t, "Electronics", in.TopCategory)
	assert.Equal(t, 240000.0, in.TopCategoryRevenue)
	assert.Equal(t, 84.03, in.TopCategoryPct)
	assert.Equal(t, 3, in.CategoryCount)
	assert.Equal(t, 2.0, in.AvgProductsPerCategory)
	assert.Equal(t, "Month 12", in.BestMonth)
	assert.Equal(t, 280, in.BestMonthUnits)
	assert.Equal(t, "Month 1", in.WorstMonth)
	assert.Equal(t, 170, in.WorstMonthUnits)
	assert.InDelta(t, 48.89, in.SeasonalVariation, 0.01)
	assert.Equal(t, "Lower prices drive higher volume", in.PricingInsight)
	assert.Equal(t, "Moderate review impact", in.ReviewInsight)
	assert.Equal(t, []string{
		"Focus marketing on Electronics category",
		"Prepare inventory for Month 12 peak season",
		"Improve products with review scores < 3.0",
		"Analyze pricing strategy based on correlation",
		"Monitor seasonal trends for better forecasting",
	}, in.Recommendations)
}

func TestGenerateInsights_CorrelationStatements(t *testing.T) {
	tests := []struct {
		name        string
		corr        domain.Correlations
		wantPricing string
		wantReview  string
	}{
		{"negative price, strong review", domain.Correlations{PriceVsSales: -0.4, ReviewVsSales: 0.5}, "Lower prices drive higher volume", "Higher rated products sell better"},
		{"zero price, threshold review", domain.Correlations{PriceVsSales: 0, ReviewVsSales: 0.2}, "Premium pricing possible", "Moderate review impact"},
		{"positive price, weak review", domain.Correlations{PriceVsSales: 0.3, ReviewVsSales: 0.21}, "Premium pricing possible", "Higher rated products sell better"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := GenerateInsights(nil, nil, tt.corr)
			assert.Equal(t, tt.wantPricing, in.PricingInsight)
			assert.Equal(t, tt.wantReview, in.ReviewInsight)
		})
	}
}

func TestGenerateInsights_FirstMonthWinsTies(t *testing.T) {
	monthly := []domain.MonthlyPoint{
		{Month: 1, Label: "Month 1", Units: 50},
		{Month: 2, Label: "Month 2", Units: 90},
		{Month: 3, Label: "Month 3", Units: 90},
		{Month: 4, Label: "Month 4", Units: 50},
	}

	in := GenerateInsights(nil, monthly, domain.Correlations{})
	assert.Equal(t, "Month 2", in.BestMonth)
	assert.Equal(t, "Month 1", in.WorstMonth)
	assert.InDelta(t, 40.0/70.0*100, in.SeasonalVariation, 1e-9)
}

func TestGenerateInsights_NoSales(t *testing.T) {
	monthly := []domain.MonthlyPoint{{Month: 1, Label: "Month 1"}, {Month: 2, Label: "Month 2"}}

	in := GenerateInsights(nil, monthly, domain.Correlations{})
	assert.Equal(t, 0.0, in.SeasonalVariation)
	assert.Empty(t, in.TopCategory)
	assert.Len(t, in.Recommendations, 5)
}
