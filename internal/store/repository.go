package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wraps data access for stores.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new store.
func (r *Repository) Create(s *Store) error {
	return r.DB.Create(s).Error
}

// ListAll returns every store, alphabetically.
func (r *Repository) ListAll() ([]Store, error) {
	var list []Store
	err := r.DB.Order("name ASC").Find(&list).Error
	return list, err
}

// FindByID returns a store with its promos and their tenor rows preloaded.
func (r *Repository) FindByID(id uuid.UUID) (*Store, error) {
	var s Store
	if err := r.DB.Preload("Promos.Tenors").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindActiveByCode resolves the public calculator handle to a store.
func (r *Repository) FindActiveByCode(code string) (*Store, error) {
	var s Store
	err := r.DB.First(&s, "code = ? AND is_active = ?", code, true).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update saves all fields of an existing store.
func (r *Repository) Update(s *Store) error {
	return r.DB.Save(s).Error
}

// DeleteByID soft-deletes a store.
func (r *Repository) DeleteByID(id uuid.UUID) error {
	res := r.DB.Delete(&Store{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
