package service

import (
	"context"

	"github.com/aroifoods/salescrm/internal/repository"
	"go.uber.org/zap"
)

// MaintenanceService wraps the one-off admin utilities.
type MaintenanceService struct {
	repo   *repository.MaintenanceRepository
	logger *zap.Logger
}

func NewMaintenanceService(repo *repository.MaintenanceRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{repo: repo, logger: logger}
}

type StorageReport struct {
	DatabaseSize string                  `json:"databaseSize"`
	Tables       []repository.TableUsage `json:"tables"`
}

func (s *MaintenanceService) StorageUsage(ctx context.Context) (*StorageReport, error) {
	size, tables, err := s.repo.StorageUsage(ctx)
	if err != nil {
		return nil, err
	}
	return &StorageReport{DatabaseSize: size, Tables: tables}, nil
}

// CleanSales strips the unregistered marker from historical rep names.
func (s *MaintenanceService) CleanSales(ctx context.Context) (int64, error) {
	n, err := s.repo.CleanSales(ctx, unregisteredMarker)
	if err != nil {
		return 0, err
	}
	s.logger.Info("cleaned sales names", zap.Int64("rows", n))
	return n, nil
}

// FixDates shifts Buddhist-Era-polluted dates back 543 years.
func (s *MaintenanceService) FixDates(ctx context.Context) (int64, error) {
	n, err := s.repo.FixDates(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("fixed buddhist-era dates", zap.Int64("rows", n))
	return n, nil
}

// Nuclear wipes every entity except profiles.
func (s *MaintenanceService) Nuclear(ctx context.Context) error {
	s.logger.Warn("nuclear wipe requested")
	return s.repo.Nuclear(ctx)
}
