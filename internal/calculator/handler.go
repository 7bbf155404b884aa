package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/installment"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// SnapshotSource abstracts the loader so the handler can be tested without
// a database.
type SnapshotSource interface {
	Load(ctx context.Context, storeCode string) (*Snapshot, error)
}

// Handler serves the public, unauthenticated calculator endpoint.
type Handler struct {
	Snapshots SnapshotSource
	Now       func() time.Time
}

func NewHandler(snapshots SnapshotSource) *Handler {
	return &Handler{Snapshots: snapshots, Now: time.Now}
}

type tenorView struct {
	Tenor                  int                           `json:"tenor"`
	Monthly                int64                         `json:"monthly"`
	MonthlyFormatted       string                        `json:"monthly_formatted"`
	TotalInterest          int64                         `json:"total_interest"`
	TotalInterestFormatted string                        `json:"total_interest_formatted"`
	TotalPayment           int64                         `json:"total_payment"`
	TotalPaymentFormatted  string                        `json:"total_payment_formatted"`
	FreeInstallment        int                           `json:"free_installment,omitempty"`
	Subsidy                *installment.SubsidyBreakdown `json:"subsidy,omitempty"`
}

type promoView struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	VoucherCode    string `json:"voucher_code"`
	MinTransaction int64  `json:"min_transaction"`
}

type response struct {
	Store           string      `json:"store"`
	Price           int64       `json:"price"`
	PriceFormatted  string      `json:"price_formatted"`
	SelectedPromoID string      `json:"selected_promo_id,omitempty"`
	Results         []tenorView `json:"results"`
	EligiblePromos  []promoView `json:"eligible_promos"`
	Error           string      `json:"error,omitempty"`
}

// Calculate handles GET /calculate/{store}?price=...&promo=...
//
// Validation failures are part of the result, not HTTP errors: the page
// shows the message and an empty grid. Only an unknown store is a 404.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Snapshots.Load(r.Context(), mux.Vars(r)["store"])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "toko tidak ditemukan", http.StatusNotFound)
			return
		}
		http.Error(w, "gagal memuat data toko", http.StatusInternalServerError)
		return
	}

	price := installment.NormalizePrice(r.URL.Query().Get("price"))
	resp := response{
		Store:          snap.StoreName,
		Price:          price,
		PriceFormatted: installment.FormatRupiah(price),
		Results:        []tenorView{},
		EligiblePromos: []promoView{},
	}

	eligible := installment.EligiblePromos(price, snap.Promos, snap.PromoTenors, h.Now())
	for _, p := range eligible {
		resp.EligiblePromos = append(resp.EligiblePromos, promoView{
			ID:             p.ID,
			Title:          p.Title,
			VoucherCode:    p.VoucherCode,
			MinTransaction: p.MinTransaction,
		})
	}

	// An ineligible or unknown promo selection silently falls back to the
	// regular computation; the dropdown only ever offers eligible ones.
	selected := r.URL.Query().Get("promo")
	if installment.FindPromo(eligible, selected) == nil {
		selected = ""
	}
	resp.SelectedPromoID = selected

	results, err := installment.Calculate(installment.Input{
		Price:           price,
		PromoTenors:     snap.PromoTenors,
		Promos:          snap.Promos,
		SelectedPromoID: selected,
	})
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, resp)
		return
	}

	tenors := make([]int, 0, len(results))
	for months := range results {
		tenors = append(tenors, months)
	}
	sort.Ints(tenors)

	for _, months := range tenors {
		res := results[months]
		view := tenorView{
			Tenor:                  months,
			Monthly:                res.Monthly,
			MonthlyFormatted:       installment.FormatRupiah(res.Monthly),
			TotalInterest:          res.TotalInterest,
			TotalInterestFormatted: installment.FormatRupiah(res.TotalInterest),
			TotalPayment:           res.TotalPayment,
			TotalPaymentFormatted:  installment.FormatRupiah(res.TotalPayment),
		}
		if selected != "" {
			if row := installment.FindTenor(snap.PromoTenors, selected, months); row != nil && row.IsAvailable {
				view.FreeInstallment = row.FreeInstallment
				if row.Subsidi > 0 {
					breakdown := installment.SubsidyFor(price, row.Subsidi)
					view.Subsidy = &breakdown
				}
			}
		}
		resp.Results = append(resp.Results, view)
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
