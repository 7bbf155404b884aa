package store

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the /stores routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

type upsertRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

// Create handles POST /stores.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Code == "" {
		http.Error(w, "name dan code wajib diisi", http.StatusBadRequest)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	s := Store{
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		LogoURL:  req.LogoURL,
		IsActive: active,
	}

	if err := h.Repo.Create(&s); err != nil {
		http.Error(w, "gagal menyimpan toko (code mungkin sudah dipakai)", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// List handles GET /stores.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "gagal membaca toko", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /stores/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID toko tidak valid", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "toko tidak ditemukan", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Update handles PUT /stores/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID toko tidak valid", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "toko tidak ditemukan", http.StatusNotFound)
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		s.Name = req.Name
	}
	if req.Code != "" {
		s.Code = req.Code
	}
	s.Address = req.Address
	s.LogoURL = req.LogoURL
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "gagal memperbarui toko", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Delete handles DELETE /stores/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID toko tidak valid", http.StatusBadRequest)
		return
	}
	if err := h.Repo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "toko tidak ditemukan", http.StatusNotFound)
			return
		}
		http.Error(w, "gagal menghapus toko", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
