// Package dataprocessing loads product sales tables and analyzes them.
//
// The pipeline is:
//
//	CSV/XLSX file -> LoadProducts -> Derive -> aggregates -> Insights -> report
//
// LoadProducts locates columns by header name and orders the sales_month_N
// columns by N. Derive adds the total_sales, avg_monthly_sales and
// total_revenue columns. The aggregate functions (ComputeKeyMetrics,
// CategoryPerformance, TopProducts, Monthly, Correlations, ReviewBins) are
// pure and operate on derived products; Analyzer runs all of them and
// GenerateInsights turns the result into narrative findings. WriteReport prints
// the console report.
//
// Basic usage:
//
//	products, err := dataprocessing.LoadProducts(ctx, "data/product_sales.csv", nil)
//	if err != nil {
//		return err
//	}
//	analysis, err := dataprocessing.NewAnalyzer(logger, dataprocessing.Options{TopN: 10}).Analyze(ctx, products)
//	if err != nil {
//		return err
//	}
//	err = dataprocessing.WriteReport(os.Stdout, analysis)
//
// Input problems are returned as errors of type errors.ErrTypeParsing with the
// offending row in the error context.
package dataprocessing
