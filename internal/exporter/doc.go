// Package exporter writes the files produced by the sales commands.
//
// CSVWriter is the shared CSV layer with streaming and optional UTF-8 BOM.
// TransactionExporter streams generated transactions into CSV or XLSX,
// ProductExporter writes product sales tables, and WorkbookExporter writes the
// analyzer's aggregate tables into a multi-sheet workbook.
//
// Example usage:
//
//	exp := exporter.NewTransactionExporter(paths, logger)
//	w, err := exp.Open("ecommerce_transactions.csv", "")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	err = w.Write(tx)
package exporter
