package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	apperrors "salescli/internal/errors"
	"salescli/internal/validation"
	"salescli/pkg/contracts/domain"
)

// ProductSheet is the preferred worksheet of xlsx product tables
const ProductSheet = "products"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var validate = validator.New()

// monthColumn is one sales_month_N column of the header
type monthColumn struct {
	month int
	index int
}

// columnMap locates the product table columns in a header row
type columnMap struct {
	fields map[string]int
	months []monthColumn
}

// LoadProducts reads a product table from a CSV or XLSX file. Columns are
// located by header name; sales_month_N columns are ordered by N. A nil
// logger uses slog.Default.
func LoadProducts(ctx context.Context, path string, logger *slog.Logger) ([]domain.ProductSales, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validation.NewFileValidator(logger).ValidateTableFile(path); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readWorkbookRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read product table", err).WithContext("path", path)
	}

	products, err := ParseProductRows(ctx, rows)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "Product table loaded",
		slog.String("path", path),
		slog.Int("products", len(products)),
		slog.Int("months", len(products[0].MonthlySales)))

	return products, nil
}

// readCSVRows reads every record of a CSV file, tolerating a UTF-8 BOM
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// readWorkbookRows reads the "products" sheet, or the first sheet when there is none
func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(strings.TrimSpace(name), ProductSheet) {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// ParseProductRows converts a header row plus data rows into products.
// Blank rows are skipped.
func ParseProductRows(ctx context.Context, rows [][]string) ([]domain.ProductSales, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("product table is empty", apperrors.ErrEmptyDataset)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	products := make([]domain.ProductSales, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}

		line := i + 2
		p, err := cols.parse(row)
		if err != nil {
			return nil, apperrors.NewParsingError("invalid product row", err).WithContext("row", line)
		}
		if err := validate.Struct(p); err != nil {
			return nil, apperrors.NewParsingError("invalid product row", err).WithContext("row", line)
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, apperrors.NewParsingError("product table has no rows", apperrors.ErrEmptyDataset)
	}
	return products, nil
}

// mapColumns finds the required columns and the month columns in header
func mapColumns(header []string) (*columnMap, error) {
	cols := &columnMap{fields: make(map[string]int)}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case slices.Contains(domain.ProductColumns, name):
			if _, dup := cols.fields[name]; !dup {
				cols.fields[name] = i
			}
		case strings.HasPrefix(name, domain.MonthColumnPrefix):
			n, err := strconv.Atoi(strings.TrimPrefix(name, domain.MonthColumnPrefix))
			if err != nil || n < 1 {
				return nil, apperrors.NewParsingError(fmt.Sprintf("bad month column %q", header[i]), err)
			}
			cols.months = append(cols.months, monthColumn{month: n, index: i})
		}
	}

	var missing []string
	for _, name := range domain.ProductColumns {
		if _, ok := cols.fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError("missing required columns", nil).
			WithContext("columns", strings.Join(missing, ","))
	}
	if len(cols.months) == 0 {
		return nil, apperrors.NewParsingError("no "+domain.MonthColumnPrefix+"N columns", nil)
	}

	slices.SortFunc(cols.months, func(a, b monthColumn) int { return a.month - b.month })
	for i := 1; i < len(cols.months); i++ {
		if cols.months[i].month == cols.months[i-1].month {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("duplicate column %s%d", domain.MonthColumnPrefix, cols.months[i].month), nil)
		}
	}

	return cols, nil
}

func (c *columnMap) cell(row []string, name string) string {
	idx := c.fields[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c *columnMap) parse(row []string) (domain.ProductSales, error) {
	p := domain.ProductSales{
		ProductID:    c.cell(row, "product_id"),
		ProductName:  c.cell(row, "product_name"),
		Category:     c.cell(row, "category"),
		MonthlySales: make([]int, len(c.months)),
	}

	var err error
	if p.Price, err = parseFloat(c.cell(row, "price")); err != nil {
		return p, fmt.Errorf("price: %w", err)
	}
	if p.ReviewScore, err = parseFloat(c.cell(row, "review_score")); err != nil {
		return p, fmt.Errorf("review_score: %w", err)
	}

	for i, m := range c.months {
		value := ""
		if m.index < len(row) {
			value = strings.TrimSpace(row[m.index])
		}
		if p.MonthlySales[i], err = parseUnits(value); err != nil {
			return p, fmt.Errorf("%s%d: %w", domain.MonthColumnPrefix, m.month, err)
		}
	}

	return p, nil
}

// parseFloat accepts thousands separators
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return v, nil
}

// parseUnits accepts integers and integral floats such as "12.0"
func parseUnits(s string) (int, error) {
	if n, err := strconv.Atoi(strings.ReplaceAll(s, ",", "")); err == nil {
		return n, nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("not a whole number of units: %s", s)
	}
	return int(v), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
