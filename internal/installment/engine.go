// Package installment is the pricing engine behind the public calculator:
// given a purchase price and a promo's per-tenor rules it computes the
// monthly payment, total interest and total payment for every tenor. The
// package is pure — no database, no clock beyond the timestamp the caller
// passes in — so every screen and import path shares one algorithm.
package installment

import (
	"sort"
	"time"
)

// FeeType selects how a promo's admin fee and discount values are read:
// as a fixed Rupiah amount or as a percentage of the price.
type FeeType string

const (
	FeeFixed   FeeType = "FIXED"
	FeePercent FeeType = "PERCENT"
)

// Promo is the engine's read-only view of a promotional campaign. The
// numeric rule values that actually apply live on its PromoTenor children.
type Promo struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	VoucherCode    string    `json:"voucher_code"`
	MinTransaction Money     `json:"min_transaction"`
	InterestRate   float64   `json:"interest_rate"` // percent per month
	AdminFeeType   FeeType   `json:"admin_fee_type"`
	DiscountType   FeeType   `json:"discount_type"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `json:"is_active"`
}

// PromoTenor holds the rule values for one (promo, tenor) pair.
type PromoTenor struct {
	PromoID         string  `json:"promo_id"`
	Tenor           int     `json:"tenor"` // months
	Admin           float64 `json:"admin"` // Rupiah when FIXED, percent when PERCENT
	Subsidi         float64 `json:"subsidi"`
	Discount        float64 `json:"discount"`
	MaxDiscount     Money   `json:"max_discount"`
	FreeInstallment int     `json:"free_installment"`
	VoucherCode     string  `json:"voucher_code"`
	IsAvailable     bool    `json:"is_available"`
}

// Result is the computed breakdown for a single tenor, keyed by the nominal
// tenor duration even when free installments shorten the actual schedule.
type Result struct {
	Monthly       Money `json:"monthly"`
	TotalInterest Money `json:"total_interest"`
	TotalPayment  Money `json:"total_payment"`
}

// SubsidyBreakdown is the merchant-side view of a subsidized tenor. It is
// informational only and never feeds back into the customer's installments.
type SubsidyBreakdown struct {
	SubsidyAmount Money `json:"subsidy_amount"`
	PartnerPayout Money `json:"partner_payout"`
}

// Input is one complete calculation request. The caller supplies already
// fetched, in-memory records; the engine never reaches out for data.
type Input struct {
	Price           Money
	TenorDurations  []int
	PromoTenors     []PromoTenor
	Promos          []Promo
	SelectedPromoID string // empty means regular / no promo
}

// BaseTenors is the fixed tenor set used when no promo tenors exist.
var BaseTenors = []int{6, 9, 12}

// DistinctTenors returns the sorted distinct tenor durations across the
// given rows, falling back to BaseTenors when the list is empty. This set
// drives the results grid even with no promo selected.
func DistinctTenors(rows []PromoTenor) []int {
	seen := make(map[int]bool)
	var out []int
	for _, r := range rows {
		if r.Tenor > 0 && !seen[r.Tenor] {
			seen[r.Tenor] = true
			out = append(out, r.Tenor)
		}
	}
	if len(out) == 0 {
		out = append(out, BaseTenors...)
	}
	sort.Ints(out)
	return out
}

// FindTenor returns the first row matching (promoID, months). Duplicate
// pairs should not exist, but when they do the first match wins; the
// tie-break is deliberately stable.
func FindTenor(rows []PromoTenor, promoID string, months int) *PromoTenor {
	for i := range rows {
		if rows[i].PromoID == promoID && rows[i].Tenor == months {
			return &rows[i]
		}
	}
	return nil
}

// FindPromo returns the promo with the given ID, or nil.
func FindPromo(promos []Promo, id string) *Promo {
	for i := range promos {
		if promos[i].ID == id {
			return &promos[i]
		}
	}
	return nil
}

// EligiblePromos filters the promos a customer may select for the given
// price: the promo must be active, inside its inclusive validity window,
// have at least one tenor rule, and the price must meet min_transaction.
func EligiblePromos(price Money, promos []Promo, rows []PromoTenor, now time.Time) []Promo {
	var out []Promo
	for _, p := range promos {
		if !p.IsActive {
			continue
		}
		if !p.StartDate.IsZero() && now.Before(p.StartDate) {
			continue
		}
		if !p.EndDate.IsZero() && now.After(p.EndDate) {
			continue
		}
		if price < p.MinTransaction {
			continue
		}
		hasTenor := false
		for _, r := range rows {
			if r.PromoID == p.ID {
				hasTenor = true
				break
			}
		}
		if hasTenor {
			out = append(out, p)
		}
	}
	return out
}

// CalculateTenor computes the breakdown for one tenor. row and promo are nil
// for the regular (no promo) computation; then the admin fee and discount
// are zero and the base monthly rate applies.
//
// The math is flat-interest amortization: interest accrues on the original
// principal every period, never on a declining balance.
func CalculateTenor(price Money, months int, row *PromoTenor, promo *Promo) (Result, error) {
	if months <= 0 {
		return Result{}, ErrInvalidConfiguration
	}

	var adminFee, discount Money
	rate := DefaultMonthlyRate
	free := 0

	if row != nil && promo != nil {
		free = row.FreeInstallment
		rate = promo.InterestRate / 100

		if promo.AdminFeeType == FeePercent {
			adminFee = ceilMoney(float64(price) * row.Admin / 100)
		} else {
			adminFee = Money(row.Admin)
		}

		if row.Discount > 0 {
			if promo.DiscountType == FeePercent {
				discount = ceilMoney(float64(price) * row.Discount / 100)
			} else {
				discount = Money(row.Discount)
			}
			if discount > row.MaxDiscount {
				discount = row.MaxDiscount
			}
		}
	}

	// A waived period count at or above the tenor would divide by zero (or
	// worse); the admin surface prevents it, the engine refuses it.
	effective := months - free
	if effective <= 0 {
		return Result{}, ErrInvalidConfiguration
	}

	principal := price + adminFee - discount
	if principal < 0 {
		principal = 0
	}

	if rate == 0 {
		return Result{
			Monthly:       ceilMoney(float64(principal) / float64(effective)),
			TotalInterest: 0,
			TotalPayment:  principal,
		}, nil
	}

	principalPerMonth := float64(principal) / float64(effective)
	interestPerMonth := float64(principal) * rate
	monthly := ceilMoney(principalPerMonth + interestPerMonth)
	total := monthly * Money(effective)

	return Result{
		Monthly:       monthly,
		TotalInterest: total - principal,
		TotalPayment:  total,
	}, nil
}

// Calculate runs the per-tenor calculator across the whole tenor grid.
// The result map is keyed by the nominal tenor duration so the UI can label
// a column "12 bulan" even when only 10 periods are actually paid.
//
// A tenor whose rule row has is_available=false falls back to the regular
// computation for that tenor only. Validation and configuration failures
// return an empty map; no partial results are ever produced.
func Calculate(in Input) (map[int]Result, error) {
	if err := ValidatePrice(in.Price); err != nil {
		return map[int]Result{}, err
	}

	tenors := in.TenorDurations
	if len(tenors) == 0 {
		tenors = DistinctTenors(in.PromoTenors)
	}

	var promo *Promo
	if in.SelectedPromoID != "" {
		promo = FindPromo(in.Promos, in.SelectedPromoID)
	}

	out := make(map[int]Result, len(tenors))
	for _, months := range tenors {
		var row *PromoTenor
		p := promo
		if promo != nil {
			row = FindTenor(in.PromoTenors, promo.ID, months)
			if row != nil && !row.IsAvailable {
				row = nil
			}
		}
		if row == nil {
			p = nil
		}
		res, err := CalculateTenor(in.Price, months, row, p)
		if err != nil {
			return map[int]Result{}, err
		}
		out[months] = res
	}
	return out, nil
}

// SubsidyFor computes the merchant payout split for a subsidized tenor.
// Uses half-up rounding, not the ceiling rule — see roundMoney.
func SubsidyFor(price Money, subsidiPct float64) SubsidyBreakdown {
	amount := roundMoney(float64(price) * subsidiPct / 100)
	return SubsidyBreakdown{
		SubsidyAmount: amount,
		PartnerPayout: price - amount,
	}
}
