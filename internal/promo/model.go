package promo

import (
	"time"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/promotenor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeeTypeFixed   = "FIXED"
	FeeTypePercent = "PERCENT"
)

// Promo is a promotional campaign owned by a store. It is a container: the
// numeric rule values live on its per-tenor rows.
type Promo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID        uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	VoucherCode    string    `gorm:"size:100" json:"voucher_code"`
	MinTransaction int64     `gorm:"not null;default:0" json:"min_transaction"`
	InterestRate   float64   `gorm:"not null;default:0" json:"interest_rate"` // percent per month
	AdminFeeType   string    `gorm:"size:10;not null;default:'FIXED'" json:"admin_fee_type"`
	DiscountType   string    `gorm:"size:10;not null;default:'FIXED'" json:"discount_type"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`

	Tenors []promotenor.PromoTenor `gorm:"foreignKey:PromoID;constraint:OnDelete:CASCADE" json:"tenors"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (p *Promo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Promo{})
}
