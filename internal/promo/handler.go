package promo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// CacheInvalidator drops a store's cached calculator snapshot after writes.
type CacheInvalidator interface {
	InvalidateStore(ctx context.Context, storeID uuid.UUID)
}

// Handler serves the /promos routes.
type Handler struct {
	Repo  *Repository
	Cache CacheInvalidator
}

func NewHandler(repo *Repository, cache CacheInvalidator) *Handler {
	return &Handler{Repo: repo, Cache: cache}
}

// Create handles POST /promos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		http.Error(w, "store_id tidak valid", http.StatusBadRequest)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	adminFeeType := req.AdminFeeType
	if adminFeeType == "" {
		adminFeeType = FeeTypeFixed
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = FeeTypeFixed
	}

	p := Promo{
		StoreID:        storeID,
		Title:          req.Title,
		VoucherCode:    req.VoucherCode,
		MinTransaction: req.MinTransaction,
		InterestRate:   req.InterestRate,
		AdminFeeType:   adminFeeType,
		DiscountType:   discountType,
		StartDate:      start,
		EndDate:        end,
		IsActive:       active,
	}

	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "gagal menyimpan promo", http.StatusInternalServerError)
		return
	}

	h.invalidate(r.Context(), p.StoreID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// List handles GET /promos, optionally filtered by ?store=<id>.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []Promo
		err  error
	)
	if storeParam := r.URL.Query().Get("store"); storeParam != "" {
		storeID, parseErr := uuid.Parse(storeParam)
		if parseErr != nil {
			http.Error(w, "parameter store tidak valid", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByStoreID(storeID)
	} else {
		list, err = h.Repo.ListAll()
	}
	if err != nil {
		http.Error(w, "gagal membaca promo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListByStore handles GET /stores/{id}/promos.
func (h *Handler) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID toko tidak valid", http.StatusBadRequest)
		return
	}
	list, err := h.Repo.ListByStoreID(storeID)
	if err != nil {
		http.Error(w, "gagal membaca promo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /promos/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "promo tidak ditemukan", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Update handles PUT /promos/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "promo tidak ditemukan", http.StatusNotFound)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.Title = req.Title
	p.VoucherCode = req.VoucherCode
	p.MinTransaction = req.MinTransaction
	p.InterestRate = req.InterestRate
	if req.AdminFeeType != "" {
		p.AdminFeeType = req.AdminFeeType
	}
	if req.DiscountType != "" {
		p.DiscountType = req.DiscountType
	}
	if req.StartDate != "" {
		p.StartDate = start
	}
	if req.EndDate != "" {
		p.EndDate = end
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "gagal memperbarui promo", http.StatusInternalServerError)
		return
	}

	h.invalidate(r.Context(), p.StoreID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Delete handles DELETE /promos/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID promo tidak valid", http.StatusBadRequest)
		return
	}
	storeID, err := h.Repo.StoreIDOf(id)
	if err != nil {
		http.Error(w, "promo tidak ditemukan", http.StatusNotFound)
		return
	}

	if err := h.Repo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "promo tidak ditemukan", http.StatusNotFound)
			return
		}
		http.Error(w, "gagal menghapus promo", http.StatusInternalServerError)
		return
	}

	h.invalidate(r.Context(), storeID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invalidate(ctx context.Context, storeID uuid.UUID) {
	if h.Cache != nil {
		h.Cache.InvalidateStore(ctx, storeID)
	}
}
