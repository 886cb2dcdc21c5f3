package utils

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a price with thousands separators and two decimals.
// Example: 1234.5 -> "$ 1,234.50"
func FormatPrice(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return "$ " + humanize.FormatFloat("#,###.##", f)
}
