package exporter

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers for console output with thousands separators
var printer = message.NewPrinter(language.English)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatInt formats an integer value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatMoney renders an amount as $1,234,567.89
func FormatMoney(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatNumber renders a float with thousands separators and the given decimals
func FormatNumber(v float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
