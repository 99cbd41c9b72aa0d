package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// Analysis workbook sheet names
const (
	SummarySheet     = "Summary"
	CategoriesSheet  = "Categories"
	TopProductsSheet = "Top Products"
	MonthlySheet     = "Monthly"
	ReviewSheet      = "Review Impact"
)

// WorkbookExporter writes the aggregate tables of an analysis to one xlsx file
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: logger.With(slog.String("component", "workbook_exporter"))}
}

type sheetTable struct {
	name    string
	headers []string
	rows    [][]interface{}
	widths  []float64
}

// Export writes the workbook to path
func (e *WorkbookExporter) Export(path string, analysis *domain.Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	tables := []sheetTable{
		summaryTable(analysis),
		categoryTable(analysis.Categories),
		topProductsTable(analysis.TopProducts),
		monthlyTable(analysis.Monthly),
		reviewTable(analysis.ReviewBins),
	}

	for i, table := range tables {
		if i == 0 {
			err = f.SetSheetName("Sheet1", table.name)
		} else {
			_, err = f.NewSheet(table.name)
		}
		if err != nil {
			return apperrors.NewStorageError("failed to create sheet", err).WithContext("sheet", table.name)
		}
		if err := writeTable(f, table, headerStyle); err != nil {
			return apperrors.NewStorageError("failed to write sheet", err).WithContext("sheet", table.name)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save analysis workbook", err).WithContext("path", path)
	}

	e.logger.Info("Analysis workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))
	return nil
}

func writeTable(f *excelize.File, table sheetTable, headerStyle int) error {
	if err := f.SetSheetRow(table.name, "A1", &table.headers); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(table.headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(table.name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range table.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range table.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(table.name, col, col, width); err != nil {
			return err
		}
	}

	return f.SetPanes(table.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func summaryTable(a *domain.Analysis) sheetTable {
	m := a.Metrics
	in := a.Insights
	rows := [][]interface{}{
		{"Total products", m.TotalProducts},
		{"Total categories", m.TotalCategories},
		{"Total units sold", m.TotalUnits},
		{"Total revenue", m.TotalRevenue},
		{"Average price", m.AveragePrice},
		{"Average monthly sales per product", m.AverageMonthlySales},
		{"Top category", in.TopCategory},
		{"Top category revenue share (%)", in.TopCategoryPct},
		{"Best month", fmt.Sprintf("%s (%d units)", in.BestMonth, in.BestMonthUnits)},
		{"Worst month", fmt.Sprintf("%s (%d units)", in.WorstMonth, in.WorstMonthUnits)},
		{"Seasonal variation (%)", in.SeasonalVariation},
		{"Price vs sales correlation", a.Correlations.PriceVsSales},
		{"Review vs sales correlation", a.Correlations.ReviewVsSales},
		{"Pricing insight", in.PricingInsight},
		{"Review insight", in.ReviewInsight},
	}
	for i, rec := range in.Recommendations {
		rows = append(rows, []interface{}{fmt.Sprintf("Recommendation %d", i+1), rec})
	}
	return sheetTable{
		name:    SummarySheet,
		headers: []string{"metric", "value"},
		rows:    rows,
		widths:  []float64{36, 60},
	}
}

func categoryTable(categories []domain.CategoryPerformance) sheetTable {
	rows := make([][]interface{}, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []interface{}{c.Category, c.NumProducts, c.TotalUnits, c.TotalRevenue, c.AvgPrice, c.AvgReview, c.RevenuePct})
	}
	return sheetTable{
		name:    CategoriesSheet,
		headers: []string{"category", "num_products", "total_units", "total_revenue", "avg_price", "avg_review", "revenue_pct"},
		rows:    rows,
		widths:  []float64{20, 14, 14, 16, 12, 12, 12},
	}
}

func topProductsTable(products []domain.ProductRevenue) sheetTable {
	rows := make([][]interface{}, 0, len(products))
	for i, p := range products {
		rows = append(rows, []interface{}{i + 1, p.ProductID, p.ProductName, p.Category, p.TotalSales, p.Price, p.TotalRevenue, p.ReviewScore})
	}
	return sheetTable{
		name:    TopProductsSheet,
		headers: []string{"rank", "product_id", "product_name", "category", "total_sales", "price", "total_revenue", "review_score"},
		rows:    rows,
		widths:  []float64{8, 12, 24, 20, 12, 12, 16, 14},
	}
}

func monthlyTable(monthly []domain.MonthlyPoint) sheetTable {
	rows := make([][]interface{}, 0, len(monthly))
	for _, p := range monthly {
		rows = append(rows, []interface{}{p.Label, p.Units, p.Revenue})
	}
	return sheetTable{
		name:    MonthlySheet,
		headers: []string{"month", "units", "revenue"},
		rows:    rows,
		widths:  []float64{12, 12, 16},
	}
}

func reviewTable(bins []domain.ReviewBin) sheetTable {
	rows := make([][]interface{}, 0, len(bins))
	for _, b := range bins {
		rows = append(rows, []interface{}{b.Label, b.Products, b.AvgTotalSales})
	}
	return sheetTable{
		name:    ReviewSheet,
		headers: []string{"review_range", "products", "avg_total_sales"},
		rows:    rows,
		widths:  []float64{18, 12, 16},
	}
}
