package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/auth"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves login and the /users routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login issues a JWT for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}

	u, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "kredensial tidak valid", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		http.Error(w, "kredensial tidak valid", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		http.Error(w, "gagal membuat token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Create handles POST /users (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email dan password wajib diisi", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "gagal memproses password", http.StatusInternalServerError)
		return
	}

	u := User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		IsAdmin:  req.IsAdmin,
	}
	if err := h.Repo.Create(&u); err != nil {
		http.Error(w, "gagal menyimpan user (email mungkin sudah terdaftar)", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// List handles GET /users: admins see everyone, others only themselves.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())

	if auth.IsAdminFrom(r.Context()) {
		list, err := h.Repo.ListAll()
		if err != nil {
			http.Error(w, "gagal membaca user", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
		return
	}

	u, err := h.Repo.FindByID(userID)
	if err != nil {
		http.Error(w, "user tidak ditemukan", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode([]User{*u})
}

// Get handles GET /users/{id} with admin-or-self access.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedTarget(w, r)
	if !ok {
		return
	}
	u, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "user tidak ditemukan", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// Update handles PUT /users/{id} with admin-or-self access.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorizedTarget(w, r)
	if !ok {
		return
	}
	u, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "user tidak ditemukan", http.StatusNotFound)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload tidak valid", http.StatusBadRequest)
		return
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "gagal memproses password", http.StatusInternalServerError)
			return
		}
		u.Password = hash
	}
	// Only admins may toggle the admin flag.
	if auth.IsAdminFrom(r.Context()) {
		u.IsAdmin = req.IsAdmin
	}

	if err := h.Repo.Update(u); err != nil {
		http.Error(w, "gagal memperbarui user", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// ResetPassword handles POST /users/{id}/reset-password (admin only) and
// returns a generated temporary password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID tidak valid", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(id); err != nil {
		http.Error(w, "user tidak ditemukan", http.StatusNotFound)
		return
	}

	temp, err := utils.GenerateTemporaryPassword()
	if err != nil {
		http.Error(w, "gagal membuat password sementara", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		http.Error(w, "gagal memproses password", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.UpdatePassword(id, hash); err != nil {
		http.Error(w, "gagal menyimpan password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"temporary_password": temp})
}

// Delete handles DELETE /users/{id} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID tidak valid", http.StatusBadRequest)
		return
	}
	if err := h.Repo.DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "user tidak ditemukan", http.StatusNotFound)
			return
		}
		http.Error(w, "gagal menghapus user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizedTarget parses {id} and enforces the admin-or-self rule.
func (h *Handler) authorizedTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID tidak valid", http.StatusBadRequest)
		return uuid.Nil, false
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	if !auth.IsAdminFrom(r.Context()) && id != callerID {
		http.Error(w, "akses ditolak", http.StatusForbidden)
		return uuid.Nil, false
	}
	return id, true
}
