package service

import (
	"github.com/aroifoods/salescrm/internal/config"
	"github.com/aroifoods/salescrm/internal/identity"
	"github.com/aroifoods/salescrm/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services holds one instance of every service, stateless between requests.
type Services struct {
	Store       *StoreService
	Visit       *VisitService
	Plan        *PlanService
	Forecast    *ForecastService
	Product     *ProductService
	Purchase    *PurchaseService
	Issue       *IssueService
	Profile     *ProfileService
	Maintenance *MaintenanceService
}

func NewServices(db *gorm.DB, repos *repository.Repositories, idp identity.Provider, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Store:       NewStoreService(db, repos.Store, cfg.Import.CodePrefix, cfg.Import.CodeWidth, logger),
		Visit:       NewVisitService(db, repos.Visit, logger),
		Plan:        NewPlanService(db, repos.Plan, logger),
		Forecast:    NewForecastService(repos.Forecast),
		Product:     NewProductService(repos.Product),
		Purchase:    NewPurchaseService(db, repos.Purchase, logger),
		Issue:       NewIssueService(db, repos.Issue, logger),
		Profile:     NewProfileService(repos.Profile, repos.Visit, repos.Plan, idp, logger),
		Maintenance: NewMaintenanceService(repos.Maintenance, logger),
	}
}
