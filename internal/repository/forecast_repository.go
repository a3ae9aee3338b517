package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type ForecastRepository struct {
	db *gorm.DB
}

func NewForecastRepository(db *gorm.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

func (r *ForecastRepository) Create(ctx context.Context, forecast *entity.Forecast) error {
	return r.db.WithContext(ctx).Create(forecast).Error
}

func (r *ForecastRepository) FindByID(ctx context.Context, id string) (*entity.Forecast, error) {
	var forecast entity.Forecast
	err := r.db.WithContext(ctx).Preload("Master").Where("id = ?", id).First(&forecast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &forecast, nil
}

func (r *ForecastRepository) Update(ctx context.Context, forecast *entity.Forecast) error {
	return r.db.WithContext(ctx).Save(forecast).Error
}

func (r *ForecastRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Forecast{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ForecastRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Forecast{}).Error
}

// List returns forecasts whose weekStart falls inside the week beginning
// at weekStart (inclusive of both ends, i.e. [start, start+6d]).
func (r *ForecastRepository) List(ctx context.Context, weekStart *time.Time) ([]entity.Forecast, error) {
	query := r.db.WithContext(ctx).Model(&entity.Forecast{}).Preload("Master")
	if weekStart != nil {
		start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
		end := start.AddDate(0, 0, 6)
		query = query.Where("week_start >= ? AND week_start <= ?", start, end)
	}
	var forecasts []entity.Forecast
	err := query.Order("week_start ASC, product ASC").Find(&forecasts).Error
	return forecasts, err
}
