package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories collects every table gateway behind one handle.
type Repositories struct {
	Store       *StoreRepository
	Visit       *VisitRepository
	Plan        *PlanRepository
	Forecast    *ForecastRepository
	Product     *ProductRepository
	Purchase    *PurchaseRepository
	Issue       *IssueRepository
	Profile     *ProfileRepository
	Maintenance *MaintenanceRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Store:       NewStoreRepository(db),
		Visit:       NewVisitRepository(db),
		Plan:        NewPlanRepository(db),
		Forecast:    NewForecastRepository(db),
		Product:     NewProductRepository(db),
		Purchase:    NewPurchaseRepository(db),
		Issue:       NewIssueRepository(db),
		Profile:     NewProfileRepository(db),
		Maintenance: NewMaintenanceRepository(db),
	}
}
