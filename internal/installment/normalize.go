package installment

import (
	"errors"
	"strings"
)

// Validation errors returned by the engine. Messages are user-facing and
// rendered as-is by the calculator page.
var (
	ErrInvalidPrice         = errors.New("Masukkan harga barang yang valid (lebih dari 0)")
	ErrPriceExceedsMaximum  = errors.New("Harga maksimum adalah Rp 30.000.000")
	ErrInvalidConfiguration = errors.New("Konfigurasi tenor promo tidak valid")
)

// NormalizePrice turns free-form user input ("Rp 1.500.000", "1,500,000",
// "1500000") into a plain amount. Every non-digit character is stripped; a
// leading minus sign is retained so downstream validation can reject the
// negative result. Empty or all-non-digit input yields 0. Values above the
// 32-bit integer ceiling clamp to that ceiling.
func NormalizePrice(raw string) Money {
	trimmed := strings.TrimSpace(raw)
	negative := strings.HasPrefix(trimmed, "-")

	var v Money
	clamped := false
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			continue
		}
		if clamped {
			continue
		}
		v = v*10 + Money(r-'0')
		if v > maxInt32 {
			v = maxInt32
			clamped = true
		}
	}
	if negative {
		v = -v
	}
	return v
}

// ValidatePrice checks a normalized price against the engine's bounds.
func ValidatePrice(price Money) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	if price > MaxPrice {
		return ErrPriceExceedsMaximum
	}
	return nil
}
