package promo

import (
	"fmt"
	"time"
)

// upsertRequest is the admin-portal payload for creating or editing a promo.
// Dates arrive as "2006-01-02" (the portal's date picker) or RFC3339.
type upsertRequest struct {
	StoreID        string  `json:"store_id"`
	Title          string  `json:"title"`
	VoucherCode    string  `json:"voucher_code"`
	MinTransaction int64   `json:"min_transaction"`
	InterestRate   float64 `json:"interest_rate"`
	AdminFeeType   string  `json:"admin_fee_type"`
	DiscountType   string  `json:"discount_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	IsActive       *bool   `json:"is_active"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("format tanggal tidak valid: %q", s)
}

func feeTypeValid(s string) bool {
	return s == FeeTypeFixed || s == FeeTypePercent
}

func (req *upsertRequest) validate() error {
	if req.Title == "" {
		return fmt.Errorf("title wajib diisi")
	}
	if req.MinTransaction < 0 {
		return fmt.Errorf("min_transaction tidak boleh negatif")
	}
	if req.InterestRate < 0 {
		return fmt.Errorf("interest_rate tidak boleh negatif")
	}
	if req.AdminFeeType != "" && !feeTypeValid(req.AdminFeeType) {
		return fmt.Errorf("admin_fee_type harus FIXED atau PERCENT")
	}
	if req.DiscountType != "" && !feeTypeValid(req.DiscountType) {
		return fmt.Errorf("discount_type harus FIXED atau PERCENT")
	}
	return nil
}
