package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// ProductSheet is the worksheet name of xlsx product tables
const ProductSheet = "products"

// ProductExporter writes product sales tables
type ProductExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewProductExporter creates a product table exporter
func NewProductExporter(paths *config.Paths, logger *slog.Logger) *ProductExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductExporter{
		csv:    NewCSVWriter(paths, logger),
		logger: logger.With(slog.String("component", "product_exporter")),
	}
}

// ProductHeaders returns the table header for products with the given number of months
func ProductHeaders(months int) []string {
	headers := append([]string{}, domain.ProductColumns...)
	for m := 1; m <= months; m++ {
		headers = append(headers, domain.MonthColumnPrefix+strconv.Itoa(m))
	}
	return headers
}

// ProductRecord converts a product to its CSV row
func ProductRecord(p domain.ProductSales) []string {
	record := []string{
		p.ProductID,
		p.ProductName,
		p.Category,
		formatFloat(p.Price),
		strconv.FormatFloat(p.ReviewScore, 'f', 1, 64),
	}
	for _, units := range p.MonthlySales {
		record = append(record, formatInt(int64(units)))
	}
	return record
}

// Export writes products to filePath; the format follows the file extension.
// It returns the resolved path.
func (e *ProductExporter) Export(filePath string, products []domain.ProductSales) (string, error) {
	if len(products) == 0 {
		return "", apperrors.NewValidationError("no products to export")
	}

	headers := ProductHeaders(len(products[0].MonthlySales))
	records := make([][]string, 0, len(products))
	for _, p := range products {
		records = append(records, ProductRecord(p))
	}

	fullPath := e.csv.ResolvePath(filePath)

	if FormatFromPath(filePath) == config.FormatXLSX {
		if err := writeProductWorkbook(fullPath, headers, products); err != nil {
			return "", apperrors.NewStorageError("failed to write product workbook", err).
				WithContext("path", fullPath)
		}
	} else if err := e.csv.WriteCSV(fullPath, WriteOptions{Headers: headers, Records: records}); err != nil {
		return "", apperrors.NewStorageError("failed to write product csv", err).
			WithContext("path", fullPath)
	}

	e.logger.Info("Product table written",
		slog.String("path", fullPath),
		slog.Int("products", len(products)))

	return fullPath, nil
}

func writeProductWorkbook(path string, headers []string, products []domain.ProductSales) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ProductSheet, "A1", &headers); err != nil {
		return err
	}

	for i, p := range products {
		row := []interface{}{p.ProductID, p.ProductName, p.Category, p.Price, p.ReviewScore}
		for _, units := range p.MonthlySales {
			row = append(row, units)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ProductSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
