package promotenor

import (
	"strings"
	"testing"
)

const validCSV = `tenor,admin,subsidi,discount,max_discount,free_installment,voucher_code,is_available
6,50000,0,0,0,0,HEMAT6,true
9,1.5,2,10,200000,0,HEMAT9,true
12,0,0,0,0,2,GRATIS2,false
`

func TestParseCSV_Valid(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Tenor != 6 || rows[0].Admin != 50000 || rows[0].VoucherCode != "HEMAT6" || !rows[0].IsAvailable {
		t.Errorf("row 0 parsed wrong: %+v", rows[0])
	}
	if rows[1].Discount != 10 || rows[1].MaxDiscount != 200000 {
		t.Errorf("row 1 parsed wrong: %+v", rows[1])
	}
	if rows[2].FreeInstallment != 2 || rows[2].IsAvailable {
		t.Errorf("row 2 parsed wrong: %+v", rows[2])
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"wrong header", "bulan,admin,subsidi,discount,max_discount,free_installment,voucher_code,is_available\n"},
		{"missing columns", "tenor,admin\n6,100\n"},
		{"bad tenor", validCSV[:strings.Index(validCSV, "\n")+1] + "abc,0,0,0,0,0,X,true\n"},
		{"free installment >= tenor", validCSV[:strings.Index(validCSV, "\n")+1] + "6,0,0,0,0,6,X,true\n"},
		{"negative subsidi", validCSV[:strings.Index(validCSV, "\n")+1] + "6,0,-1,0,0,0,X,true\n"},
		{"bad bool", validCSV[:strings.Index(validCSV, "\n")+1] + "6,0,0,0,0,0,X,maybe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ok := PromoTenor{Tenor: 12, FreeInstallment: 11}
	if err := ok.Validate(); err != nil {
		t.Errorf("free installment just below tenor should pass: %v", err)
	}
	bad := PromoTenor{Tenor: 12, FreeInstallment: 12}
	if err := bad.Validate(); err != ErrFreeInstallmentTooLarge {
		t.Errorf("err = %v, want ErrFreeInstallmentTooLarge", err)
	}
}
