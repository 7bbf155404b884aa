package promotenor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoTenor is the per-tenor rule row of a promo: one row per
// (promo, tenor months) pair.
//
// Admin and Discount are read as fixed Rupiah amounts or as percentages
// depending on the parent promo's admin_fee_type / discount_type.
type PromoTenor struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PromoID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_promo_tenor" json:"promo_id"`
	Tenor           int            `gorm:"not null;uniqueIndex:idx_promo_tenor" json:"tenor"`
	Admin           float64        `gorm:"not null;default:0" json:"admin"`
	Subsidi         float64        `gorm:"not null;default:0" json:"subsidi"`
	Discount        float64        `gorm:"not null;default:0" json:"discount"`
	MaxDiscount     int64          `gorm:"not null;default:0" json:"max_discount"`
	FreeInstallment int            `gorm:"not null;default:0" json:"free_installment"`
	VoucherCode     string         `gorm:"size:100;index" json:"voucher_code"`
	IsAvailable     bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (pt *PromoTenor) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	return nil
}

// Validate enforces the configuration invariants the engine refuses to
// compute around.
func (pt *PromoTenor) Validate() error {
	if pt.Tenor <= 0 {
		return ErrInvalidTenor
	}
	if pt.FreeInstallment < 0 || pt.FreeInstallment >= pt.Tenor {
		return ErrFreeInstallmentTooLarge
	}
	if pt.Admin < 0 || pt.Subsidi < 0 || pt.Discount < 0 || pt.MaxDiscount < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PromoTenor{})
}
