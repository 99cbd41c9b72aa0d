package domain

import (
	"time"
)

// Transaction is one synthetic sale event. Records are written once and never mutated;
// CustomerID has no backing customer entity.
type Transaction struct {
	TransactionID   int64           `json:"transaction_id" validate:"gte=0"`
	Date            time.Time       `json:"date" validate:"required"`
	CustomerID      int             `json:"customer_id" validate:"gte=1"`
	CustomerSegment CustomerSegment `json:"customer_segment" validate:"oneof=Premium Regular Budget"`
	Category        string          `json:"category" validate:"required"`
	ProductName     string          `json:"product_name" validate:"required"`
	Quantity        int             `json:"quantity" validate:"oneof=1 2 3"`
	UnitPrice       float64         `json:"unit_price" validate:"gt=0"`
	DiscountPercent float64         `json:"discount_percent" validate:"gte=0,lte=100"`
	TotalAmount     float64         `json:"total_amount" validate:"gt=0"`
	PaymentMethod   PaymentMethod   `json:"payment_method" validate:"oneof='Credit Card' 'Debit Card' PayPal Cash"`
	ShippingMethod  ShippingMethod  `json:"shipping_method" validate:"oneof=Standard Express 'Next Day'"`
	Country         Country         `json:"country" validate:"oneof=USA Canada UK Germany France"`
}

// TransactionColumns is the column order of transaction files
var TransactionColumns = []string{
	"transaction_id",
	"date",
	"customer_id",
	"customer_segment",
	"category",
	"product_name",
	"quantity",
	"unit_price",
	"discount_percent",
	"total_amount",
	"payment_method",
	"shipping_method",
	"country",
}

// CustomerSegment drives the discount range of a transaction
type CustomerSegment string

const (
	SegmentPremium CustomerSegment = "Premium"
	SegmentRegular CustomerSegment = "Regular"
	SegmentBudget  CustomerSegment = "Budget"
)

// PaymentMethod is how a transaction was paid
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentPayPal     PaymentMethod = "PayPal"
	PaymentCash       PaymentMethod = "Cash"
)

// ShippingMethod is how a transaction was delivered
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "Standard"
	ShippingExpress  ShippingMethod = "Express"
	ShippingNextDay  ShippingMethod = "Next Day"
)

// Country is the destination country of a transaction
type Country string

const (
	CountryUSA     Country = "USA"
	CountryCanada  Country = "Canada"
	CountryUK      Country = "UK"
	CountryGermany Country = "Germany"
	CountryFrance  Country = "France"
)
