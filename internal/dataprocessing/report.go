package dataprocessing

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"salescli/internal/exporter"
	"salescli/pkg/contracts/domain"
)

// ReportTitle heads the console report
const ReportTitle = "E-COMMERCE PRODUCT SALES ANALYSIS"

var banner = strings.Repeat("=", 80)

// reportWriter keeps the first write error so sections can be written without checks
type reportWriter struct {
	w   io.Writer
	err error
}

func (r *reportWriter) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *reportWriter) section(title string) {
	r.printf("\n%s\n%s\n%s\n", banner, title, banner)
}

// table writes tab-separated rows aligned in columns
func (r *reportWriter) table(header []string, rows [][]string) {
	if r.err != nil {
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	r.err = tw.Flush()
}

// WriteReport writes the textual analysis report
func WriteReport(w io.Writer, a *domain.Analysis) error {
	r := &reportWriter{w: w}
	m := a.Metrics
	in := a.Insights

	r.printf("%s\n%s\n%s\n", banner, ReportTitle, banner)
	r.printf("\nDataset Overview:\n")
	r.printf("Total Products: %s\n", exporter.FormatCount(m.TotalProducts))
	r.printf("Categories: %d\n", m.TotalCategories)

	r.section("KEY METRICS")
	r.printf("\nTotal Units Sold: %s\n", exporter.FormatCount(m.TotalUnits))
	r.printf("Total Revenue: %s\n", exporter.FormatMoney(m.TotalRevenue))
	r.printf("Average Product Price: %s\n", exporter.FormatMoney(m.AveragePrice))
	r.printf("Average Monthly Sales per Product: %s units\n", exporter.FormatNumber(m.AverageMonthlySales, 0))

	r.section("CATEGORY PERFORMANCE")
	r.printf("\nCategory Performance:\n")
	categoryRows := make([][]string, 0, len(a.Categories))
	for _, c := range a.Categories {
		categoryRows = append(categoryRows, []string{
			c.Category,
			fmt.Sprint(c.NumProducts),
			fmt.Sprint(c.TotalUnits),
			fmt.Sprintf("%.2f", c.TotalRevenue),
			fmt.Sprintf("%.2f", c.AvgPrice),
			fmt.Sprintf("%.2f", c.AvgReview),
			fmt.Sprintf("%.2f", c.RevenuePct),
		})
	}
	r.table([]string{"category", "num_products", "total_units", "total_revenue", "avg_price", "avg_review", "revenue_pct"}, categoryRows)

	r.section("TOP PERFORMING PRODUCTS")
	r.printf("\nTop %d Products by Revenue:\n", len(a.TopProducts))
	productRows := make([][]string, 0, len(a.TopProducts))
	for _, p := range a.TopProducts {
		productRows = append(productRows, []string{
			p.ProductName,
			p.Category,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprint(p.TotalSales),
			fmt.Sprintf("%.2f", p.TotalRevenue),
			fmt.Sprintf("%.1f", p.ReviewScore),
		})
	}
	r.table([]string{"product_name", "category", "price", "total_sales", "total_revenue", "review_score"}, productRows)

	r.section("MONTHLY SALES TRENDS")
	r.printf("\nMonthly Sales (Units):\n")
	monthRows := make([][]string, 0, len(a.Monthly))
	for _, p := range a.Monthly {
		monthRows = append(monthRows, []string{p.Label, fmt.Sprint(p.Units), fmt.Sprintf("%.2f", p.Revenue)})
	}
	r.table([]string{"month", "units", "revenue"}, monthRows)

	r.section("PRICE VS SALES ANALYSIS")
	r.printf("\nCorrelation between Price and Sales: %.3f\n", a.Correlations.PriceVsSales)

	r.section("REVIEW SCORE IMPACT")
	r.printf("\nCorrelation between Review Score and Sales: %.3f\n", a.Correlations.ReviewVsSales)
	r.printf("\nAverage Sales by Review Score:\n")
	binRows := make([][]string, 0, len(a.ReviewBins))
	for _, b := range a.ReviewBins {
		binRows = append(binRows, []string{b.Label, fmt.Sprint(b.Products), fmt.Sprintf("%.2f", b.AvgTotalSales)})
	}
	r.table([]string{"review_bin", "products", "avg_total_sales"}, binRows)

	r.section("KEY BUSINESS INSIGHTS")
	r.printf("\n1. CATEGORY INSIGHTS\n")
	r.printf("   - %s is the top category with %s (%.1f%% of revenue)\n",
		in.TopCategory, exporter.FormatMoney(in.TopCategoryRevenue), in.TopCategoryPct)
	r.printf("   - Total categories: %d\n", in.CategoryCount)
	r.printf("   - Products per category avg: %s\n", exporter.FormatNumber(in.AvgProductsPerCategory, 0))

	r.printf("\n2. SEASONALITY\n")
	r.printf("   - Best month: %s with %s units\n", in.BestMonth, exporter.FormatCount(in.BestMonthUnits))
	r.printf("   - Weakest month: %s with %s units\n", in.WorstMonth, exporter.FormatCount(in.WorstMonthUnits))
	r.printf("   - Seasonal variation: %.1f%%\n", in.SeasonalVariation)

	r.printf("\n3. PRICING INSIGHTS\n")
	r.printf("   - Price-sales correlation: %.3f\n", a.Correlations.PriceVsSales)
	r.printf("   - %s\n", in.PricingInsight)

	r.printf("\n4. REVIEW SCORE IMPACT\n")
	r.printf("   - Review-sales correlation: %.3f\n", a.Correlations.ReviewVsSales)
	r.printf("   - %s\n", in.ReviewInsight)

	r.printf("\n5. RECOMMENDATIONS\n")
	for _, rec := range in.Recommendations {
		r.printf("   - %s\n", rec)
	}

	r.printf("\n%s\nANALYSIS COMPLETE\n%s\n", banner, banner)
	return r.err
}
