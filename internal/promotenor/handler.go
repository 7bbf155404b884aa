package promotenor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/notification"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// PromoDirectory resolves a promo's parent store, implemented by the promo
// repository.
type PromoDirectory interface {
	StoreIDOf(promoID uuid.UUID) (uuid.UUID, error)
}

// CacheInvalidator drops a store's cached calculator snapshot after writes.
type CacheInvalidator interface {
	InvalidateStore(ctx context.Context, storeID uuid.UUID)
}

// Handler serves the nested tenor-rule routes under /promos/{id}/tenors.
type Handler struct {
	Repo     *Repository
	Promos   PromoDirectory
	Cache    CacheInvalidator
	Notifier *notification.Webhook
}

func NewHandler(repo *Repository, promos PromoDirectory, cache CacheInvalidator, notifier *notification.Webhook) *Handler {
	return &Handler{Repo: repo, Promos: promos, Cache: cache, Notifier: notifier}
}

type upsertRequest struct {
	Tenor           int     `json:"tenor"`
	Admin           float64 `json:"admin"`
	Subsidi         float64 `json:"subsidi"`
	Discount        float64 `json:"discount"`
	MaxDiscount     int64   `json:"max_discount"`
	FreeInstallment int     `json:"free_installment"`
	VoucherCode     string  `json:"voucher_code"`
	IsAvailable     *bool   `json:"is_available"`
}

func (req *upsertRequest) toModel(promoID uuid.UUID) *PromoTenor {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &PromoTenor{
		PromoID:         promoID,
		Tenor:           req.Tenor,
		Admin:           req.Admin,
		Subsidi:         req.Subsidi,
		Discount:        req.Discount,
		MaxDiscount:     req.MaxDiscount,
		FreeInstallment: req.FreeInstallment,
		VoucherCode:     req.VoucherCode,
		IsAvailable:     available,
	}
}

// Create handles POST /promos/{id}/tenors.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	promoID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}

	pt := req.toModel(promoID)
	if err := pt.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(pt); err != nil {
		http.Error(w, "gagal menyimpan tenor promo", http.StatusInternalServerError)
		return
	}

	h.alertOnDuplicateVoucher(pt)
	h.invalidate(r.Context(), promoID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pt)
}

// CreateBatch handles POST /promos/{id}/tenors/batch with a JSON array.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	promoID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}

	var reqs []upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}

	rows := make([]*PromoTenor, 0, len(reqs))
	for _, req := range reqs {
		pt := req.toModel(promoID)
		if err := pt.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows = append(rows, pt)
	}

	if err := h.Repo.CreateInBatch(rows); err != nil {
		http.Error(w, "gagal menyimpan tenor promo", http.StatusInternalServerError)
		return
	}

	for _, pt := range rows {
		h.alertOnDuplicateVoucher(pt)
	}
	h.invalidate(r.Context(), promoID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rows)
}

// ImportCSV handles POST /promos/{id}/tenors/import with a multipart file
// field named "file" (the portal's bulk-upload tooling).
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	promoID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file CSV tidak ditemukan pada field 'file'", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ParseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "file CSV tidak berisi baris data", http.StatusBadRequest)
		return
	}
	for _, pt := range rows {
		pt.PromoID = promoID
	}

	if err := h.Repo.CreateInBatch(rows); err != nil {
		http.Error(w, "gagal menyimpan tenor promo", http.StatusInternalServerError)
		return
	}

	for _, pt := range rows {
		h.alertOnDuplicateVoucher(pt)
	}
	h.invalidate(r.Context(), promoID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"imported": len(rows)})
}

// ListByPromo handles GET /promos/{id}/tenors.
func (h *Handler) ListByPromo(w http.ResponseWriter, r *http.Request) {
	promoID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}
	rows, err := h.Repo.ListByPromoID(promoID)
	if err != nil {
		http.Error(w, "gagal membaca tenor promo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Update handles PUT /tenors/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID tenor tidak valid", http.StatusBadRequest)
		return
	}

	pt, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "tenor promo tidak ditemukan", http.StatusNotFound)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}

	updated := req.toModel(pt.PromoID)
	updated.ID = pt.ID
	updated.CreatedAt = pt.CreatedAt
	if err := updated.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Repo.Update(updated); err != nil {
		http.Error(w, "gagal memperbarui tenor promo", http.StatusInternalServerError)
		return
	}

	h.alertOnDuplicateVoucher(updated)
	h.invalidate(r.Context(), pt.PromoID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /tenors/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID tenor tidak valid", http.StatusBadRequest)
		return
	}

	pt, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "tenor promo tidak ditemukan", http.StatusNotFound)
		return
	}

	if err := h.Repo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "tenor promo tidak ditemukan", http.StatusNotFound)
			return
		}
		http.Error(w, "gagal menghapus tenor promo", http.StatusInternalServerError)
		return
	}

	h.invalidate(r.Context(), pt.PromoID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invalidate(ctx context.Context, promoID uuid.UUID) {
	if h.Cache == nil || h.Promos == nil {
		return
	}
	storeID, err := h.Promos.StoreIDOf(promoID)
	if err != nil {
		return
	}
	h.Cache.InvalidateStore(ctx, storeID)
}

func (h *Handler) alertOnDuplicateVoucher(pt *PromoTenor) {
	if h.Notifier == nil || pt.VoucherCode == "" {
		return
	}
	n, err := h.Repo.CountByVoucherCode(pt.VoucherCode, pt.PromoID)
	if err != nil || n == 0 {
		return
	}
	go h.Notifier.SendDuplicateVoucherAlert(pt.VoucherCode, pt.PromoID.String())
}
