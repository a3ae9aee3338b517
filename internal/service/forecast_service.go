package service

import (
	"context"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
)

type ForecastService struct {
	forecasts *repository.ForecastRepository
}

func NewForecastService(forecasts *repository.ForecastRepository) *ForecastService {
	return &ForecastService{forecasts: forecasts}
}

type CreateForecastInput struct {
	MasterID    *string   `json:"masterId"`
	Product     string    `json:"product" binding:"required,min=1"`
	TargetWeek  float64   `json:"targetWeek"`
	TargetMonth float64   `json:"targetMonth"`
	Forecast    float64   `json:"forecast"`
	Actual      float64   `json:"actual"`
	Notes       string    `json:"notes"`
	WeekStart   time.Time `json:"weekStart" binding:"required"`
}

type UpdateForecastInput struct {
	MasterID    *string    `json:"masterId"`
	Product     *string    `json:"product"`
	TargetWeek  *float64   `json:"targetWeek"`
	TargetMonth *float64   `json:"targetMonth"`
	Forecast    *float64   `json:"forecast"`
	Actual      *float64   `json:"actual"`
	Notes       *string    `json:"notes"`
	WeekStart   *time.Time `json:"weekStart"`
}

func (s *ForecastService) List(ctx context.Context, weekStart *time.Time) ([]entity.Forecast, error) {
	return s.forecasts.List(ctx, weekStart)
}

func (s *ForecastService) Get(ctx context.Context, id string) (*entity.Forecast, error) {
	return s.forecasts.FindByID(ctx, id)
}

func (s *ForecastService) Create(ctx context.Context, input *CreateForecastInput) (*entity.Forecast, error) {
	forecast := &entity.Forecast{
		ID:          uuid.New().String(),
		MasterID:    input.MasterID,
		Product:     input.Product,
		TargetWeek:  input.TargetWeek,
		TargetMonth: input.TargetMonth,
		Forecast:    input.Forecast,
		Actual:      input.Actual,
		Notes:       input.Notes,
		WeekStart:   input.WeekStart,
	}
	if err := s.forecasts.Create(ctx, forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

func (s *ForecastService) Update(ctx context.Context, id string, input *UpdateForecastInput) (*entity.Forecast, error) {
	forecast, err := s.forecasts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.MasterID != nil {
		forecast.MasterID = input.MasterID
	}
	if input.Product != nil {
		forecast.Product = *input.Product
	}
	if input.TargetWeek != nil {
		forecast.TargetWeek = *input.TargetWeek
	}
	if input.TargetMonth != nil {
		forecast.TargetMonth = *input.TargetMonth
	}
	if input.Forecast != nil {
		forecast.Forecast = *input.Forecast
	}
	if input.Actual != nil {
		forecast.Actual = *input.Actual
	}
	if input.Notes != nil {
		forecast.Notes = *input.Notes
	}
	if input.WeekStart != nil {
		forecast.WeekStart = *input.WeekStart
	}
	if err := s.forecasts.Update(ctx, forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

func (s *ForecastService) Delete(ctx context.Context, id string) error {
	return s.forecasts.Delete(ctx, id)
}
