package domain

// ProductSales is one row of the analyzer's input table plus its derived columns.
type ProductSales struct {
	ProductID    string  `json:"product_id" validate:"required"`
	ProductName  string  `json:"product_name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	ReviewScore  float64 `json:"review_score" validate:"gte=0,lte=5"`
	MonthlySales []int   `json:"monthly_sales" validate:"min=1,dive,gte=0"`

	// Derived
	TotalSales      int     `json:"total_sales"`
	AvgMonthlySales float64 `json:"avg_monthly_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// MonthColumnPrefix prefixes the monthly unit sales columns: sales_month_1 ... sales_month_12
const MonthColumnPrefix = "sales_month_"

// ProductColumns are the fixed leading columns of a product table
var ProductColumns = []string{
	"product_id",
	"product_name",
	"category",
	"price",
	"review_score",
}
