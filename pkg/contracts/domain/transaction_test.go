package domain

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		TransactionID:   1000,
		Date:            time.Date(2023, 11, 24, 0, 0, 0, 0, time.UTC),
		CustomerID:      42,
		CustomerSegment: SegmentPremium,
		Category:        "Electronics",
		ProductName:     "Laptop",
		Quantity:        2,
		UnitPrice:       999.99,
		DiscountPercent: 12.5,
		TotalAmount:     1749.98,
		PaymentMethod:   PaymentCreditCard,
		ShippingMethod:  ShippingNextDay,
		Country:         CountryGermany,
	}
}

func TestTransaction_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{"valid", func(*Transaction) {}, false},
		{"quantity outside set", func(tx *Transaction) { tx.Quantity = 4 }, true},
		{"unknown segment", func(tx *Transaction) { tx.CustomerSegment = "VIP" }, true},
		{"unknown payment", func(tx *Transaction) { tx.PaymentMethod = "Bitcoin" }, true},
		{"two word shipping", func(tx *Transaction) { tx.ShippingMethod = ShippingExpress }, false},
		{"unknown country", func(tx *Transaction) { tx.Country = "Spain" }, true},
		{"discount over 100", func(tx *Transaction) { tx.DiscountPercent = 120 }, true},
		{"customer zero", func(tx *Transaction) { tx.CustomerID = 0 }, true},
		{"missing date", func(tx *Transaction) { tx.Date = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := validate.Struct(tx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductSales_Validation(t *testing.T) {
	validate := validator.New()

	p := ProductSales{
		ProductID:    "1",
		ProductName:  "Laptop",
		Category:     "Electronics",
		Price:        999,
		ReviewScore:  4.5,
		MonthlySales: []int{10, 20},
	}
	assert.NoError(t, validate.Struct(p))

	p.ReviewScore = 5.5
	assert.Error(t, validate.Struct(p))

	p.ReviewScore = 3
	p.MonthlySales = []int{10, -1}
	assert.Error(t, validate.Struct(p))

	p.MonthlySales = nil
	assert.Error(t, validate.Struct(p))
}

func TestTransactionColumns(t *testing.T) {
	assert.Len(t, TransactionColumns, 13)
	assert.Equal(t, "transaction_id", TransactionColumns[0])
	assert.Equal(t, "country", TransactionColumns[12])
}
