package installment

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func promoFixture() Promo {
	return Promo{
		ID:             "promo-1",
		Title:          "Promo Gajian",
		VoucherCode:    "GAJIAN",
		MinTransaction: 1_000_000,
		InterestRate:   2,
		AdminFeeType:   FeeFixed,
		DiscountType:   FeePercent,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
}

func TestCalculateTenor_NoPromoBaseline(t *testing.T) {
	// price=10.000.000, tenor 6, no promo: flat 2.6% per month.
	got, err := CalculateTenor(10_000_000, 6, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Result{Monthly: 1_926_667, TotalInterest: 1_560_002, TotalPayment: 11_560_002}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCalculateTenor_PromoFeeAndCappedDiscount(t *testing.T) {
	// price=5.000.000, fixed admin 50.000, 10% discount capped at 200.000,
	// tenor 9, rate 2%: principal 4.850.000, monthly ceil(538.888,9+97.000).
	promo := promoFixture()
	row := PromoTenor{
		PromoID:     promo.ID,
		Tenor:       9,
		Admin:       50_000,
		Discount:    10,
		MaxDiscount: 200_000,
		IsAvailable: true,
	}

	got, err := CalculateTenor(5_000_000, 9, &row, &promo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Monthly != 635_889 {
		t.Errorf("Monthly = %d, want 635889", got.Monthly)
	}
	if got.TotalPayment != 635_889*9 {
		t.Errorf("TotalPayment = %d, want %d", got.TotalPayment, int64(635_889*9))
	}
	if got.TotalInterest != got.TotalPayment-4_850_000 {
		t.Errorf("TotalInterest = %d, inconsistent with principal", got.TotalInterest)
	}
}

func TestCalculateTenor_PercentAdminFee(t *testing.T) {
	promo := promoFixture()
	promo.AdminFeeType = FeePercent
	promo.InterestRate = 0
	row := PromoTenor{PromoID: promo.ID, Tenor: 6, Admin: 1.5, IsAvailable: true}

	// adminFee = ceil(1.000.001 * 1.5%) = ceil(15.000,015) = 15.001
	got, err := CalculateTenor(1_000_001, 6, &row, &promo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	principal := Money(1_000_001 + 15_001)
	if got.TotalPayment != principal {
		t.Errorf("TotalPayment = %d, want principal %d at zero rate", got.TotalPayment, principal)
	}
	if got.TotalInterest != 0 {
		t.Errorf("TotalInterest = %d, want 0 at zero rate", got.TotalInterest)
	}
	if got.Monthly != ceilMoney(float64(principal)/6) {
		t.Errorf("Monthly = %d, want ceil(principal/6)", got.Monthly)
	}
}

func TestCalculateTenor_ZeroPromoRate(t *testing.T) {
	// A promo with 0% interest is a real product: rate 0 means
	// totalPayment == principal, not monthly*months.
	promo := promoFixture()
	promo.InterestRate = 0
	promo.AdminFeeType = FeeFixed
	row := PromoTenor{PromoID: promo.ID, Tenor: 9, IsAvailable: true}

	got, err := CalculateTenor(1_000_000, 9, &row, &promo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalPayment != 1_000_000 {
		t.Errorf("TotalPayment = %d, want 1000000", got.TotalPayment)
	}
	if got.Monthly != 111_112 { // ceil(111.111,1)
		t.Errorf("Monthly = %d, want 111112", got.Monthly)
	}
}

func TestCalculateTenor_FreeInstallment(t *testing.T) {
	// Free installments shorten the schedule, not the label: tenor 12 with 2
	// waived periods amortizes over 10.
	promo := promoFixture()
	promo.InterestRate = 2.6
	row := PromoTenor{PromoID: promo.ID, Tenor: 12, FreeInstallment: 2, IsAvailable: true}

	got, err := CalculateTenor(30_000_000, 12, &row, &promo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantMonthly := ceilMoney(30_000_000.0/10 + 30_000_000.0*0.026)
	if got.Monthly != wantMonthly {
		t.Errorf("Monthly = %d, want %d", got.Monthly, wantMonthly)
	}
	if got.TotalPayment != wantMonthly*10 {
		t.Errorf("TotalPayment = %d, want monthly*10 not monthly*12", got.TotalPayment)
	}
}

func TestCalculateTenor_FreeInstallmentAtOrAboveTenor(t *testing.T) {
	promo := promoFixture()
	for _, free := range []int{6, 7} {
		row := PromoTenor{PromoID: promo.ID, Tenor: 6, FreeInstallment: free, IsAvailable: true}
		if _, err := CalculateTenor(1_000_000, 6, &row, &promo); err != ErrInvalidConfiguration {
			t.Errorf("free=%d: err = %v, want ErrInvalidConfiguration", free, err)
		}
	}
}

func TestCalculateTenor_DiscountLargerThanPrincipalClampsToZero(t *testing.T) {
	promo := promoFixture()
	promo.DiscountType = FeeFixed
	promo.InterestRate = 2
	row := PromoTenor{
		PromoID:     promo.ID,
		Tenor:       6,
		Discount:    5_000_000,
		MaxDiscount: 5_000_000,
		IsAvailable: true,
	}

	got, err := CalculateTenor(1_000_000, 6, &row, &promo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Monthly != 0 || got.TotalPayment != 0 || got.TotalInterest != 0 {
		t.Errorf("got %+v, want all-zero result for fully discounted principal", got)
	}
}

func TestCalculateTenor_CeilingNeverUndershoots(t *testing.T) {
	// monthly must never be below the true real-valued sum.
	prices := []Money{1, 999, 1_000_000, 1_234_567, 9_999_999, 29_999_999, 30_000_000}
	for _, price := range prices {
		for _, months := range BaseTenors {
			got, err := CalculateTenor(price, months, nil, nil)
			if err != nil {
				t.Fatalf("price=%d months=%d: %v", price, months, err)
			}
			exact := float64(price)/float64(months) + float64(price)*DefaultMonthlyRate
			if float64(got.Monthly) < exact {
				t.Errorf("price=%d months=%d: monthly %d below exact %f", price, months, got.Monthly, exact)
			}
		}
	}
}

func TestCalculateTenor_MonthlyMonotonicInPrice(t *testing.T) {
	promo := promoFixture()
	row := PromoTenor{PromoID: promo.ID, Tenor: 12, Admin: 25_000, Discount: 5, MaxDiscount: 100_000, IsAvailable: true}

	var prev Money = -1
	for price := Money(100_000); price <= 20_000_000; price += 97_531 {
		got, err := CalculateTenor(price, 12, &row, &promo)
		if err != nil {
			t.Fatalf("price=%d: %v", price, err)
		}
		if got.Monthly < prev {
			t.Fatalf("monthly decreased: price=%d monthly=%d prev=%d", price, got.Monthly, prev)
		}
		prev = got.Monthly
	}
}

func TestCalculateTenor_PercentDiscountNeverExceedsCap(t *testing.T) {
	promo := promoFixture()
	promo.DiscountType = FeePercent
	promo.InterestRate = 0
	cap := Money(150_000)

	for price := Money(500_000); price <= 30_000_000; price += 1_333_337 {
		capped := PromoTenor{PromoID: promo.ID, Tenor: 6, Discount: 10, MaxDiscount: cap, IsAvailable: true}
		free := PromoTenor{PromoID: promo.ID, Tenor: 6, Discount: 10, MaxDiscount: math.MaxInt32, IsAvailable: true}

		withCap, err := CalculateTenor(price, 6, &capped, &promo)
		if err != nil {
			t.Fatalf("price=%d: %v", price, err)
		}
		noCap, err := CalculateTenor(price, 6, &free, &promo)
		if err != nil {
			t.Fatalf("price=%d: %v", price, err)
		}
		// At zero rate totalPayment equals the principal, so the applied
		// discount is directly observable.
		appliedCapped := price - withCap.TotalPayment
		appliedFree := price - noCap.TotalPayment
		if appliedCapped > cap {
			t.Errorf("price=%d: applied discount %d exceeds cap %d", price, appliedCapped, cap)
		}
		if appliedFree < appliedCapped {
			t.Errorf("price=%d: cap increased the discount", price)
		}
	}
}

func TestCalculate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		price   Money
		wantErr error
	}{
		{"zero price", 0, ErrInvalidPrice},
		{"negative price", -5_000, ErrInvalidPrice},
		{"just above maximum", 30_000_001, ErrPriceExceedsMaximum},
		{"at maximum", 30_000_000, nil},
		{"minimal valid", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(Input{Price: tt.price})
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && len(got) != 0 {
				t.Errorf("got %d results, want empty set on validation failure", len(got))
			}
			if tt.wantErr == nil && len(got) != len(BaseTenors) {
				t.Errorf("got %d results, want %d base tenors", len(got), len(BaseTenors))
			}
		})
	}
}

func TestCalculate_NoPromoUsesBaseRateEverywhere(t *testing.T) {
	got, err := Calculate(Input{Price: 10_000_000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, months := range BaseTenors {
		res, ok := got[months]
		if !ok {
			t.Fatalf("missing tenor %d", months)
		}
		base, _ := CalculateTenor(10_000_000, months, nil, nil)
		if res != base {
			t.Errorf("tenor %d: %+v differs from base computation %+v", months, res, base)
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	promo := promoFixture()
	in := Input{
		Price:           7_777_777,
		Promos:          []Promo{promo},
		SelectedPromoID: promo.ID,
		PromoTenors: []PromoTenor{
			{PromoID: promo.ID, Tenor: 6, Admin: 10_000, IsAvailable: true},
			{PromoID: promo.ID, Tenor: 12, Admin: 10_000, FreeInstallment: 1, IsAvailable: true},
		},
	}
	first, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls diverged: %+v vs %+v", first, second)
	}
}

func TestCalculate_UnavailableTenorFallsBackToBase(t *testing.T) {
	promo := promoFixture()
	in := Input{
		Price:           5_000_000,
		Promos:          []Promo{promo},
		SelectedPromoID: promo.ID,
		PromoTenors: []PromoTenor{
			{PromoID: promo.ID, Tenor: 6, Admin: 100_000, IsAvailable: true},
			{PromoID: promo.ID, Tenor: 9, Admin: 100_000, IsAvailable: false},
		},
	}
	got, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base9, _ := CalculateTenor(5_000_000, 9, nil, nil)
	if got[9] != base9 {
		t.Errorf("tenor 9 = %+v, want base computation %+v", got[9], base9)
	}
	promo6, _ := CalculateTenor(5_000_000, 6, &in.PromoTenors[0], &promo)
	if got[6] != promo6 {
		t.Errorf("tenor 6 = %+v, want promo computation %+v", got[6], promo6)
	}
}

func TestCalculate_UnknownPromoIDComputesRegular(t *testing.T) {
	got, err := Calculate(Input{Price: 3_000_000, SelectedPromoID: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base, _ := CalculateTenor(3_000_000, 6, nil, nil)
	if got[6] != base {
		t.Errorf("tenor 6 = %+v, want base %+v", got[6], base)
	}
}

func TestDistinctTenors(t *testing.T) {
	tests := []struct {
		name string
		rows []PromoTenor
		want []int
	}{
		{"empty falls back to base set", nil, []int{6, 9, 12}},
		{
			"deduplicates and sorts",
			[]PromoTenor{{Tenor: 12}, {Tenor: 6}, {Tenor: 12}, {Tenor: 3}},
			[]int{3, 6, 12},
		},
		{"ignores non-positive", []PromoTenor{{Tenor: 0}, {Tenor: -3}}, []int{6, 9, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistinctTenors(tt.rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindTenor_FirstMatchWins(t *testing.T) {
	rows := []PromoTenor{
		{PromoID: "p", Tenor: 6, Admin: 111},
		{PromoID: "p", Tenor: 6, Admin: 222},
	}
	got := FindTenor(rows, "p", 6)
	if got == nil || got.Admin != 111 {
		t.Errorf("got %+v, want the first of the duplicate rows", got)
	}
	if FindTenor(rows, "p", 9) != nil {
		t.Error("expected nil for unknown tenor")
	}
}

func TestEligiblePromos(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	active := promoFixture()
	inactive := promoFixture()
	inactive.ID = "promo-2"
	inactive.IsActive = false
	expired := promoFixture()
	expired.ID = "promo-3"
	expired.EndDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	future := promoFixture()
	future.ID = "promo-4"
	future.StartDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	pricey := promoFixture()
	pricey.ID = "promo-5"
	pricey.MinTransaction = 20_000_000
	bare := promoFixture()
	bare.ID = "promo-6" // no tenor rows

	rows := []PromoTenor{
		{PromoID: active.ID, Tenor: 6},
		{PromoID: inactive.ID, Tenor: 6},
		{PromoID: expired.ID, Tenor: 6},
		{PromoID: future.ID, Tenor: 6},
		{PromoID: pricey.ID, Tenor: 6},
	}
	promos := []Promo{active, inactive, expired, future, pricey, bare}

	got := EligiblePromos(5_000_000, promos, rows, now)
	if len(got) != 1 || got[0].ID != active.ID {
		ids := make([]string, len(got))
		for i, p := range got {
			ids[i] = p.ID
		}
		t.Errorf("eligible = %v, want [%s]", ids, active.ID)
	}

	// Raising the price past min_transaction admits the pricier promo too.
	got = EligiblePromos(25_000_000, promos, rows, now)
	if len(got) != 2 {
		t.Errorf("eligible count = %d, want 2 at price 25jt", len(got))
	}
}

func TestSubsidyFor(t *testing.T) {
	tests := []struct {
		name    string
		price   Money
		subsidi float64
		want    SubsidyBreakdown
	}{
		{"whole percent", 10_000_000, 5, SubsidyBreakdown{500_000, 9_500_000}},
		// 1.000.001 * 2.5% = 25.000,025 → rounds down (half-up rule, not ceiling).
		{"rounds to nearest", 1_000_001, 2.5, SubsidyBreakdown{25_000, 975_001}},
		{"zero subsidy", 1_000_000, 0, SubsidyBreakdown{0, 1_000_000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubsidyFor(tt.price, tt.subsidi); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
