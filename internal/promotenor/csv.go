package promotenor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the expected column order of a bulk-upload file. The admin
// portal exports templates in exactly this shape.
var csvHeader = []string{
	"tenor", "admin", "subsidi", "discount",
	"max_discount", "free_installment", "voucher_code", "is_available",
}

// ParseCSV reads a bulk-upload file into rule rows. The first record must be
// the header. Rows are validated as they are read; the error names the
// offending line.
func ParseCSV(r io.Reader) ([]*PromoTenor, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("file CSV kosong atau tidak terbaca: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []*PromoTenor
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("baris %d: %w", line, err)
		}

		pt, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("baris %d: %w", line, err)
		}
		rows = append(rows, pt)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("header CSV harus %d kolom: %s", len(csvHeader), strings.Join(csvHeader, ","))
	}
	for i, want := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("kolom %d harus %q, bukan %q", i+1, want, header[i])
		}
	}
	return nil
}

func parseRecord(record []string) (*PromoTenor, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("jumlah kolom %d, harus %d", len(record), len(csvHeader))
	}

	tenor, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("tenor tidak valid: %q", record[0])
	}
	admin, err := parseFloat(record[1], "admin")
	if err != nil {
		return nil, err
	}
	subsidi, err := parseFloat(record[2], "subsidi")
	if err != nil {
		return nil, err
	}
	discount, err := parseFloat(record[3], "discount")
	if err != nil {
		return nil, err
	}
	maxDiscount, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("max_discount tidak valid: %q", record[4])
	}
	freeInstallment, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("free_installment tidak valid: %q", record[5])
	}
	available, err := parseBool(record[7])
	if err != nil {
		return nil, err
	}

	pt := &PromoTenor{
		Tenor:           tenor,
		Admin:           admin,
		Subsidi:         subsidi,
		Discount:        discount,
		MaxDiscount:     maxDiscount,
		FreeInstallment: freeInstallment,
		VoucherCode:     strings.TrimSpace(record[6]),
		IsAvailable:     available,
	}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s tidak valid: %q", field, s)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "ya", "yes":
		return true, nil
	case "false", "0", "tidak", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("is_available tidak valid: %q", s)
}
