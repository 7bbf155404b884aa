package promo

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wraps data access for promos.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new promo.
func (r *Repository) Create(p *Promo) error {
	return r.DB.Create(p).Error
}

// FindByID returns a promo with its tenor rows preloaded.
func (r *Repository) FindByID(id uuid.UUID) (*Promo, error) {
	var p Promo
	if err := r.DB.Preload("Tenors").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll returns every promo, newest first.
func (r *Repository) ListAll() ([]Promo, error) {
	var list []Promo
	err := r.DB.Preload("Tenors").Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListByStoreID returns all promos of one store.
func (r *Repository) ListByStoreID(storeID uuid.UUID) ([]Promo, error) {
	var list []Promo
	err := r.DB.Preload("Tenors").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListActiveByStoreID returns the active promos of a store with their tenor
// rows, the working set of the public calculator.
func (r *Repository) ListActiveByStoreID(storeID uuid.UUID) ([]Promo, error) {
	var list []Promo
	err := r.DB.Preload("Tenors").
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// StoreIDOf resolves a promo's parent store without loading the whole row.
func (r *Repository) StoreIDOf(promoID uuid.UUID) (uuid.UUID, error) {
	var p Promo
	if err := r.DB.Select("store_id").First(&p, "id = ?", promoID).Error; err != nil {
		return uuid.Nil, err
	}
	return p.StoreID, nil
}

// Update saves all fields of an existing promo.
func (r *Repository) Update(p *Promo) error {
	return r.DB.Save(p).Error
}

// DeleteByID soft-deletes a promo; its tenor rows cascade at the database.
func (r *Repository) DeleteByID(id uuid.UUID) error {
	res := r.DB.Delete(&Promo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
