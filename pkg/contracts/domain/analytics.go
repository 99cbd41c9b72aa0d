package domain

// KeyMetrics are the headline numbers of an analysis
type KeyMetrics struct {
	TotalProducts       int     `json:"total_products"`
	TotalCategories     int     `json:"total_categories"`
	TotalUnits          int     `json:"total_units"`
	TotalRevenue        float64 `json:"total_revenue"`
	AveragePrice        float64 `json:"average_price"`
	AverageMonthlySales float64 `json:"average_monthly_sales"`
}

// CategoryPerformance is the grouped aggregate of one product category.
// Monetary and averaged fields are rounded to two decimals.
type CategoryPerformance struct {
	Category     string  `json:"category"`
	NumProducts  int     `json:"num_products"`
	TotalUnits   int     `json:"total_units"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgPrice     float64 `json:"avg_price"`
	AvgReview    float64 `json:"avg_review"`
	RevenuePct   float64 `json:"revenue_pct"`
}

// ProductRevenue is one row of the top products table
type ProductRevenue struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	TotalSales   int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	Price        float64 `json:"price"`
	ReviewScore  float64 `json:"review_score"`
}

// MonthlyPoint is the aggregate of one month column across all products
type MonthlyPoint struct {
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// ReviewBin groups products by review score; Lower is exclusive, Upper inclusive
type ReviewBin struct {
	Label         string  `json:"label"`
	Lower         float64 `json:"lower"`
	Upper         float64 `json:"upper"`
	Products      int     `json:"products"`
	AvgTotalSales float64 `json:"avg_total_sales"`
}

// Correlations between product attributes and total unit sales
type Correlations struct {
	PriceVsSales  float64 `json:"price_vs_sales"`
	PriceDefined  bool    `json:"price_defined"`
	ReviewVsSales float64 `json:"review_vs_sales"`
	ReviewDefined bool    `json:"review_defined"`
}

// Insights are the narrative findings derived from an analysis
type Insights struct {
	TopCategory            string   `json:"top_category"`
	TopCategoryRevenue     float64  `json:"top_category_revenue"`
	TopCategoryPct         float64  `json:"top_category_pct"`
	CategoryCount          int      `json:"category_count"`
	AvgProductsPerCategory float64  `json:"avg_products_per_category"`
	BestMonth              string   `json:"best_month"`
	BestMonthUnits         int      `json:"best_month_units"`
	WorstMonth             string   `json:"worst_month"`
	WorstMonthUnits        int      `json:"worst_month_units"`
	SeasonalVariation      float64  `json:"seasonal_variation"`
	PricingInsight         string   `json:"pricing_insight"`
	ReviewInsight          string   `json:"review_insight"`
	Recommendations        []string `json:"recommendations"`
}

// Analysis is the complete result of analyzing a product table
type Analysis struct {
	Products      []ProductSales        `json:"-"`
	Metrics       KeyMetrics            `json:"metrics"`
	Categories    []CategoryPerformance `json:"categories"`
	TopProducts   []ProductRevenue      `json:"top_products"`
	Monthly       []MonthlyPoint        `json:"monthly"`
	Correlations  Correlations          `json:"correlations"`
	ReviewBins    []ReviewBin           `json:"review_bins"`
	Insights      Insights              `json:"insights"`
	CategoryOrder []string              `json:"category_order"`
}
