package installment

import (
	"math"
	"strconv"
	"strings"
)

// Money is a monetary amount in whole Rupiah. The Rupiah has no fractional
// unit in this product, so amounts are plain integers.
type Money = int64

const (
	// MaxPrice is the product ceiling for a single purchase price.
	MaxPrice Money = 30_000_000

	// DefaultMonthlyRate is the flat monthly interest used whenever no promo
	// overrides it (2.6% per month).
	DefaultMonthlyRate = 0.026

	// maxInt32 guards the legacy 32-bit price column.
	maxInt32 Money = math.MaxInt32
)

// ceilMoney rounds a real-valued amount up to the next whole Rupiah. Fees and
// interest always round in the customer's disfavor.
func ceilMoney(v float64) Money {
	return Money(math.Ceil(v))
}

// roundMoney rounds half away from zero. The subsidy breakdown uses this
// instead of the ceiling rule; the asymmetry is intentional.
func roundMoney(v float64) Money {
	return Money(math.Round(v))
}

// FormatRupiah renders an amount as "Rp 1.234.567" with Indonesian thousands
// grouping. Formatting never alters the underlying integer.
func FormatRupiah(m Money) string {
	var sb strings.Builder
	if m < 0 {
		sb.WriteByte('-')
		m = -m
	}
	sb.WriteString("Rp ")

	digits := strconv.FormatInt(m, 10)
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
		if len(digits) > head {
			sb.WriteByte('.')
		}
	}
	for i := head; i < len(digits); i += 3 {
		sb.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
