package calculator

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ApriadiS/merchantportal-client-sub000/internal/cache"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/installment"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/promo"
	"github.com/ApriadiS/merchantportal-client-sub000/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSnapshotTTL bounds how stale the public calculator may be when a
// cache invalidation is missed.
const DefaultSnapshotTTL = 5 * time.Minute

// Snapshot is the immutable, in-memory promo state of one store, in the
// engine's own types. The engine reads snapshots and nothing else.
type Snapshot struct {
	StoreID     string                   `json:"store_id"`
	StoreName   string                   `json:"store_name"`
	Promos      []installment.Promo      `json:"promos"`
	PromoTenors []installment.PromoTenor `json:"promo_tenors"`
}

// SnapshotLoader builds snapshots from the database and caches the JSON per
// store. Admin writes invalidate the store's key.
type SnapshotLoader struct {
	Stores *store.Repository
	Promos *promo.Repository
	Cache  cache.Repository
	TTL    time.Duration
}

func NewSnapshotLoader(db *gorm.DB, c cache.Repository) *SnapshotLoader {
	return &SnapshotLoader{
		Stores: store.NewRepository(db),
		Promos: promo.NewRepository(db),
		Cache:  c,
		TTL:    DefaultSnapshotTTL,
	}
}

func snapshotKey(storeID string) string {
	return "calculator:snapshot:" + storeID
}

// Load resolves a public store code to its snapshot, preferring the cache.
func (l *SnapshotLoader) Load(ctx context.Context, storeCode string) (*Snapshot, error) {
	s, err := l.Stores.FindActiveByCode(storeCode)
	if err != nil {
		return nil, err
	}

	key := snapshotKey(s.ID.String())
	if l.Cache != nil {
		if raw, ok := l.Cache.Get(ctx, key); ok {
			var snap Snapshot
			if err := json.Unmarshal([]byte(raw), &snap); err == nil {
				return &snap, nil
			}
			// Corrupt entry, drop it and rebuild.
			_ = l.Cache.Delete(ctx, key)
		}
	}

	promos, err := l.Promos.ListActiveByStoreID(s.ID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		StoreID:   s.ID.String(),
		StoreName: s.Name,
	}
	for _, p := range promos {
		snap.Promos = append(snap.Promos, installment.Promo{
			ID:             p.ID.String(),
			Title:          p.Title,
			VoucherCode:    p.VoucherCode,
			MinTransaction: p.MinTransaction,
			InterestRate:   p.InterestRate,
			AdminFeeType:   installment.FeeType(p.AdminFeeType),
			DiscountType:   installment.FeeType(p.DiscountType),
			StartDate:      p.StartDate,
			EndDate:        p.EndDate,
			IsActive:       p.IsActive,
		})
		for _, t := range p.Tenors {
			snap.PromoTenors = append(snap.PromoTenors, installment.PromoTenor{
				PromoID:         p.ID.String(),
				Tenor:           t.Tenor,
				Admin:           t.Admin,
				Subsidi:         t.Subsidi,
				Discount:        t.Discount,
				MaxDiscount:     t.MaxDiscount,
				FreeInstallment: t.FreeInstallment,
				VoucherCode:     t.VoucherCode,
				IsAvailable:     t.IsAvailable,
			})
		}
	}

	if l.Cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			if err := l.Cache.Set(ctx, key, string(raw), l.TTL); err != nil {
				log.Printf("gagal menyimpan snapshot ke cache: %v", err)
			}
		}
	}
	return snap, nil
}

// InvalidateStore drops a store's cached snapshot. Called by the promo and
// promo-tenor handlers after every write.
func (l *SnapshotLoader) InvalidateStore(ctx context.Context, storeID uuid.UUID) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Delete(ctx, snapshotKey(storeID.String())); err != nil {
		log.Printf("gagal menghapus snapshot dari cache: %v", err)
	}
}
