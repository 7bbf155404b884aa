package store

import (
	"time"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/promo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a merchant outlet. Its Code is the public handle used by the
// calculator page URL.
type Store struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Code     string    `gorm:"size:100;not null;uniqueIndex" json:"code"`
	Address  string    `gorm:"size:500" json:"address"`
	LogoURL  string    `gorm:"size:500" json:"logo_url"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	Promos []promo.Promo `gorm:"foreignKey:StoreID" json:"promos,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Store{})
}
