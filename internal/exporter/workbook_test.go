package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salescli/pkg/contracts/domain"
)

func sampleAnalysis() *domain.Analysis {
	return &domain.Analysis{
		Metrics: domain.KeyMetrics{
			TotalProducts:       6,
			TotalCategories:     3,
			TotalUnits:          2700,
			TotalRevenue:        285600,
			AveragePrice:        267.5,
			AverageMonthlySales: 37.5,
		},
		Categories: []domain.CategoryPerformance{
			{Category: "Electronics", NumProducts: 2, TotalUnits: 360, TotalRevenue: 240000, AvgPrice: 750, AvgReview: 4.25, RevenuePct: 84.03},
			{Category: "Clothing", NumProducts: 2, TotalUnits: 960, TotalRevenue: 30000, AvgPrice: 35, AvgReview: 3, RevenuePct: 10.5},
		},
		TopProducts: []domain.ProductRevenue{
			{ProductID: "1", ProductName: "Laptop", Category: "Electronics", TotalSales: 120, TotalRevenue: 120000, Price: 1000, ReviewScore: 4.5},
		},
		Monthly: []domain.MonthlyPoint{
			{Month: 1, Label: "Month 1", Units: 170, Revenue: 23550},
			{Month: 2, Label: "Month 2", Units: 180, Revenue: 23650},
		},
		ReviewBins: []domain.ReviewBin{
			{Label: "Poor (0-2)", Lower: 0, Upper: 2, Products: 1, AvgTotalSales: 1260},
		},
		Insights: domain.Insights{
			TopCategory:     "Electronics",
			TopCategoryPct:  84.03,
			BestMonth:       "Month 12",
			BestMonthUnits:  280,
			WorstMonth:      "Month 1",
			WorstMonthUnits: 170,
			PricingInsight:  "Lower prices drive higher volume",
			ReviewInsight:   "Higher rated products sell better",
			Recommendations: []string{"Focus on Electronics", "Plan inventory for Month 12"},
		},
	}
}

func TestWorkbookExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "analysis.xlsx")

	require.NoError(t, NewWorkbookExporter(nil).Export(path, sampleAnalysis()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CategoriesSheet, TopProductsSheet, MonthlySheet, ReviewSheet}, f.GetSheetList())

	categories, err := f.GetRows(CategoriesSheet)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "category", categories[0][0])
	assert.Equal(t, "Electronics", categories[1][0])
	assert.Equal(t, "84.03", categories[1][6])

	top, err := f.GetRows(TopProductsSheet)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, []string{"1", "1", "Laptop", "Electronics", "120", "1000", "120000", "4.5"}, top[1])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	last := summary[len(summary)-1]
	assert.Equal(t, []string{"Recommendation 2", "Plan inventory for Month 12"}, last)

	monthly, err := f.GetRows(MonthlySheet)
	require.NoError(t, err)
	assert.Len(t, monthly, 3)

	review, err := f.GetRows(ReviewSheet)
	require.NoError(t, err)
	assert.Equal(t, "Poor (0-2)", review[1][0])
}
