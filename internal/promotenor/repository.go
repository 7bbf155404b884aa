package promotenor

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidTenor            = errors.New("tenor harus lebih dari 0 bulan")
	ErrFreeInstallmentTooLarge = errors.New("free installment harus lebih kecil dari tenor")
	ErrNegativeValue           = errors.New("nilai tenor promo tidak boleh negatif")
)

// Repository wraps data access for promo tenor rows.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts one rule row.
func (r *Repository) Create(pt *PromoTenor) error {
	return r.DB.Create(pt).Error
}

// CreateInBatch inserts multiple rows at once (no-op when empty).
func (r *Repository) CreateInBatch(rows []*PromoTenor) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Create(rows).Error
}

// FindByID returns a single row by its ID.
func (r *Repository) FindByID(id uuid.UUID) (*PromoTenor, error) {
	var pt PromoTenor
	if err := r.DB.First(&pt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListByPromoID returns all rows of one promo, ordered by tenor.
func (r *Repository) ListByPromoID(promoID uuid.UUID) ([]PromoTenor, error) {
	var rows []PromoTenor
	err := r.DB.Where("promo_id = ?", promoID).Order("tenor ASC").Find(&rows).Error
	return rows, err
}

// ListByStoreID returns every rule row across all promos of a store.
func (r *Repository) ListByStoreID(storeID uuid.UUID) ([]PromoTenor, error) {
	var rows []PromoTenor
	err := r.DB.
		Joins("JOIN promos ON promos.id = promo_tenors.promo_id").
		Where("promos.store_id = ?", storeID).
		Order("promo_tenors.tenor ASC").
		Find(&rows).Error
	return rows, err
}

// Update saves all fields of an existing row.
func (r *Repository) Update(pt *PromoTenor) error {
	return r.DB.Save(pt).Error
}

// DeleteByID removes a row; gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) DeleteByID(id uuid.UUID) error {
	res := r.DB.Delete(&PromoTenor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByVoucherCode counts rows carrying the given voucher code on other
// promos, used for the duplicate-voucher alert.
func (r *Repository) CountByVoucherCode(code string, excludePromoID uuid.UUID) (int64, error) {
	if code == "" {
		return 0, nil
	}
	var n int64
	err := r.DB.Model(&PromoTenor{}).
		Where("voucher_code = ? AND promo_id <> ?", code, excludePromoID).
		Count(&n).Error
	return n, err
}
