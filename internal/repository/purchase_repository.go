package repository

import (
	"context"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// List filters purchases by free-text search over the related store and
// by payment status.
func (r *PurchaseRepository) List(ctx context.Context, search, status string) ([]entity.Purchase, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).Preload("Store")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN stores ON stores.id = purchases.store_id").
			Where("purchases.round ILIKE ? OR stores.name ILIKE ? OR stores.code ILIKE ?", pattern, pattern, pattern)
	}
	if status != "" {
		query = query.Where("purchases.status = ?", status)
	}

	var purchases []entity.Purchase
	err := query.Order("purchases.date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Purchase{}).Error
}
