package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
	"salescli/pkg/contracts/domain"
)

// TransactionSheet is the worksheet name of xlsx transaction files
const TransactionSheet = "transactions"

// TransactionWriter receives generated transactions one at a time
type TransactionWriter interface {
	Write(tx domain.Transaction) error
	Close() error
	Path() string
}

// TransactionExporter writes transaction files in CSV or XLSX format
type TransactionExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewTransactionExporter creates a transaction exporter
func NewTransactionExporter(paths *config.Paths, logger *slog.Logger) *TransactionExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionExporter{
		csv:    NewCSVWriter(paths, logger),
		logger: logger.With(slog.String("component", "transaction_exporter")),
	}
}

// Open creates the output file and returns a writer for it. An empty format
// is inferred from the file extension.
func (e *TransactionExporter) Open(filePath, format string) (TransactionWriter, error) {
	if format == "" {
		format = FormatFromPath(filePath)
	}
	if ext, ok := ExtensionFormat(filePath); ok && ext != format {
		return nil, apperrors.NewValidationError(fmt.Sprintf("output %s does not match format %q", filePath, format))
	}

	switch format {
	case config.FormatCSV:
		sw, err := e.csv.CreateStreamWriter(filePath, domain.TransactionColumns, false)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to create transaction csv", err).
				WithContext("path", filePath)
		}
		return &csvTransactionWriter{stream: sw}, nil
	case config.FormatXLSX:
		w, err := newXLSXTransactionWriter(e.csv.ResolvePath(filePath))
		if err != nil {
			return nil, apperrors.NewStorageError("failed to create transaction workbook", err).
				WithContext("path", filePath)
		}
		e.logger.Info("Creating XLSX stream writer", slog.String("full_path", w.path))
		return w, nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported output format %q", format))
	}
}

// FormatFromPath infers the output format from a file extension
func FormatFromPath(filePath string) string {
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		return config.FormatXLSX
	}
	return config.FormatCSV
}

// ExtensionFormat reports the format named by a .csv or .xlsx extension
func ExtensionFormat(filePath string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		return config.FormatCSV, true
	case ".xlsx":
		return config.FormatXLSX, true
	}
	return "", false
}

// WithFormatExtension replaces the extension of filePath with the one of format
func WithFormatExtension(filePath, format string) string {
	return strings.TrimSuffix(filePath, filepath.Ext(filePath)) + "." + format
}

// TransactionRecord converts a transaction to its CSV row
func TransactionRecord(tx domain.Transaction) []string {
	return []string{
		formatInt(tx.TransactionID),
		tx.Date.Format(config.DateLayout),
		formatInt(int64(tx.CustomerID)),
		string(tx.CustomerSegment),
		tx.Category,
		tx.ProductName,
		formatInt(int64(tx.Quantity)),
		formatFloat(tx.UnitPrice),
		formatFloat(tx.DiscountPercent),
		formatFloat(tx.TotalAmount),
		string(tx.PaymentMethod),
		string(tx.ShippingMethod),
		string(tx.Country),
	}
}

// transactionCells converts a transaction to typed spreadsheet cells
func transactionCells(tx domain.Transaction) []interface{} {
	return []interface{}{
		tx.TransactionID,
		tx.Date.Format(config.DateLayout),
		tx.CustomerID,
		string(tx.CustomerSegment),
		tx.Category,
		tx.ProductName,
		tx.Quantity,
		tx.UnitPrice,
		tx.DiscountPercent,
		tx.TotalAmount,
		string(tx.PaymentMethod),
		string(tx.ShippingMethod),
		string(tx.Country),
	}
}

type csvTransactionWriter struct {
	stream *StreamWriter
}

func (w *csvTransactionWriter) Write(tx domain.Transaction) error {
	return w.stream.WriteRecord(TransactionRecord(tx))
}

func (w *csvTransactionWriter) Close() error {
	if err := w.stream.Close(); err != nil {
		return apperrors.NewStorageError("failed to close transaction csv", err)
	}
	return nil
}

func (w *csvTransactionWriter) Path() string {
	return w.stream.Path()
}

// xlsxTransactionWriter streams rows into a single worksheet
type xlsxTransactionWriter struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	path   string
	row    int
}

func newXLSXTransactionWriter(path string) (*xlsxTransactionWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TransactionSheet); err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(TransactionSheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(domain.TransactionColumns))
	for i, col := range domain.TransactionColumns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, err
	}

	return &xlsxTransactionWriter{file: f, stream: sw, path: path, row: 1}, nil
}

func (w *xlsxTransactionWriter) Write(tx domain.Transaction) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	return w.stream.SetRow(cell, transactionCells(tx))
}

func (w *xlsxTransactionWriter) Close() error {
	defer w.file.Close()

	if err := w.stream.Flush(); err != nil {
		return apperrors.NewStorageError("failed to flush transaction workbook", err)
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return apperrors.NewStorageError("failed to save transaction workbook", err).
			WithContext("path", w.path)
	}
	return nil
}

func (w *xlsxTransactionWriter) Path() string {
	return w.path
}
