package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, visit *entity.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*entity.Visit, error) {
	var visit entity.Visit
	err := r.db.WithContext(ctx).Preload("Master").Where("id = ?", id).First(&visit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &visit, nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Visit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VisitRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Visit{}).Error
}

// List filters visits by free-text search over the rep name and the
// related store, by rep and by inclusive date range.
func (r *VisitRepository) List(ctx context.Context, search, sales string, start, end *time.Time) ([]entity.Visit, error) {
	query := r.db.WithContext(ctx).Model(&entity.Visit{}).Preload("Master")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("LEFT JOIN stores ON stores.id = visits.master_id").
			Where("visits.sales ILIKE ? OR stores.name ILIKE ? OR stores.code ILIKE ? OR stores.owner ILIKE ?",
				pattern, pattern, pattern, pattern)
	}
	if sales != "" {
		query = query.Where("visits.sales = ?", sales)
	}
	if start != nil {
		query = query.Where("visits.date >= ?", *start)
	}
	if end != nil {
		query = query.Where("visits.date <= ?", *end)
	}

	var visits []entity.Visit
	err := query.Order("visits.date DESC").Find(&visits).Error
	return visits, err
}

// DistinctSales returns every distinct rep display name on record.
func (r *VisitRepository) DistinctSales(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Visit{}).
		Distinct("sales").
		Where("sales <> ''").
		Pluck("sales", &names).Error
	return names, err
}

// RenameSales bulk-rewrites one historical rep name to its canonical form.
func (r *VisitRepository) RenameSales(ctx context.Context, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Visit{}).
		Where("sales = ?", from).
		Update("sales", to)
	return res.RowsAffected, res.Error
}
