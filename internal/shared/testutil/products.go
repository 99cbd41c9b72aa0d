package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"salescli/pkg/contracts/domain"
)

func flat(units int) []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = units
	}
	return months
}

// SampleProducts returns a small product table with hand-checkable aggregates:
// 2700 units, 285600 revenue, Electronics first by revenue, Month 12 the best
// month (280 units) and Month 1 the worst (170 units).
func SampleProducts() []domain.ProductSales {
	rising := make([]int, 12)
	for i := range rising {
		rising[i] = 50 + 10*i
	}

	return []domain.ProductSales{
		{ProductID: "1", ProductName: "Laptop", Category: "Electronics", Price: 1000, ReviewScore: 4.5, MonthlySales: flat(10)},
		{ProductID: "2", ProductName: "Smartphone", Category: "Electronics", Price: 500, ReviewScore: 4.0, MonthlySales: flat(20)},
		{ProductID: "3", ProductName: "T-Shirt", Category: "Clothing", Price: 20, ReviewScore: 3.5, MonthlySales: flat(50)},
		{ProductID: "4", ProductName: "Jeans", Category: "Clothing", Price: 50, ReviewScore: 2.5, MonthlySales: flat(30)},
		{ProductID: "5", ProductName: "Fiction Novel", Category: "Books", Price: 10, ReviewScore: 1.5, MonthlySales: rising},
		{ProductID: "6", ProductName: "Cookbook", Category: "Books", Price: 25, ReviewScore: 5.0, MonthlySales: flat(10)},
	}
}

// ProductHeader returns the product table header for the given number of months
func ProductHeader(months int) []string {
	header := append([]string{}, domain.ProductColumns...)
	for m := 1; m <= months; m++ {
		header = append(header, domain.MonthColumnPrefix+strconv.Itoa(m))
	}
	return header
}

// ProductRows converts products to CSV rows in ProductHeader order
func ProductRows(products []domain.ProductSales) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		row := []string{
			p.ProductID,
			p.ProductName,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.FormatFloat(p.ReviewScore, 'f', 1, 64),
		}
		for _, units := range p.MonthlySales {
			row = append(row, strconv.Itoa(units))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteProductCSV writes products to dir/name and returns the path
func WriteProductCSV(t *testing.T, dir, name string, products []domain.ProductSales) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	months := 12
	if len(products) > 0 {
		months = len(products[0].MonthlySales)
	}
	if err := w.Write(ProductHeader(months)); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(ProductRows(products)); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return path
}
