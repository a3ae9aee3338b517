package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (*entity.Plan, error) {
	var plan entity.Plan
	err := r.db.WithContext(ctx).Preload("Master").Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Plan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlanRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Plan{}).Error
}

// List filters plans by inclusive date range.
func (r *PlanRepository) List(ctx context.Context, start, end *time.Time) ([]entity.Plan, error) {
	query := r.db.WithContext(ctx).Model(&entity.Plan{}).Preload("Master")
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}
	var plans []entity.Plan
	err := query.Order("date ASC, sort_order ASC").Find(&plans).Error
	return plans, err
}

// MaxOrder returns the highest visit sequence number the rep already has
// on that calendar day. Orders are string-encoded, so they are parsed
// here rather than compared in SQL.
func (r *PlanRepository) MaxOrder(ctx context.Context, sales string, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var orders []string
	err := r.db.WithContext(ctx).
		Model(&entity.Plan{}).
		Where("sales = ? AND date >= ? AND date < ?", sales, dayStart, dayEnd).
		Pluck("sort_order", &orders).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, o := range orders {
		if n, err := strconv.Atoi(o); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

func (r *PlanRepository) DistinctSales(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Plan{}).
		Distinct("sales").
		Where("sales <> ''").
		Pluck("sales", &names).Error
	return names, err
}

func (r *PlanRepository) RenameSales(ctx context.Context, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Plan{}).
		Where("sales = ?", from).
		Update("sales", to)
	return res.RowsAffected, res.Error
}
