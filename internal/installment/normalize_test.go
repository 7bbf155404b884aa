package installment

import (
	"math"
	"testing"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Money
	}{
		{"plain digits", "1500000", 1_500_000},
		{"dot separators", "1.500.000", 1_500_000},
		{"comma separators", "1,500,000", 1_500_000},
		{"currency prefix", "Rp 2.000.000", 2_000_000},
		{"mixed garbage", "harga 12x34", 1234},
		{"empty", "", 0},
		{"no digits at all", "Rp .-", 0},
		{"whitespace only", "   ", 0},
		{"leading minus is kept", "-500", -500},
		{"minus inside is stripped", "5-00", 500},
		{"clamps at int32 ceiling", "99999999999999", math.MaxInt32},
		{"exactly int32 max", "2147483647", math.MaxInt32},
		{"one past int32 max", "2147483648", math.MaxInt32},
		{"negative overflow clamps then negates", "-99999999999999", -math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePrice(tt.raw); got != tt.want {
				t.Errorf("NormalizePrice(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePrice_Referential(t *testing.T) {
	if NormalizePrice("7.500.000") != NormalizePrice("7.500.000") {
		t.Error("same input produced different outputs")
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name  string
		price Money
		want  error
	}{
		{"zero", 0, ErrInvalidPrice},
		{"negative", -1, ErrInvalidPrice},
		{"one rupiah", 1, nil},
		{"at ceiling", MaxPrice, nil},
		{"above ceiling", MaxPrice + 1, ErrPriceExceedsMaximum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePrice(tt.price); got != tt.want {
				t.Errorf("ValidatePrice(%d) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{0, "Rp 0"},
		{1, "Rp 1"},
		{999, "Rp 999"},
		{1000, "Rp 1.000"},
		{30_000_000, "Rp 30.000.000"},
		{1_926_667, "Rp 1.926.667"},
		{-500_000, "-Rp 500.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.in); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
