package service

import (
	"context"
	"strconv"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	planDateKeys  = []string{"วันที่", "date", "วันที่นัด"}
	planSalesKeys = []string{"เซลล์", "sales", "พนักงานขาย"}
	planCatKeys   = []string{"หัวข้อ", "visitCat", "topic"}
	planNoteKeys  = []string{"บันทึก", "notes", "หมายเหตุ"}
)

type PlanService struct {
	db     *gorm.DB
	plans  *repository.PlanRepository
	logger *zap.Logger
}

func NewPlanService(db *gorm.DB, plans *repository.PlanRepository, logger *zap.Logger) *PlanService {
	return &PlanService{db: db, plans: plans, logger: logger}
}

type CreatePlanInput struct {
	Date     time.Time `json:"date" binding:"required"`
	Sales    string    `json:"sales" binding:"required,min=1"`
	MasterID *string   `json:"masterId"`
	VisitCat string    `json:"visitCat"`
	Notes    string    `json:"notes"`
	Order    string    `json:"order"`
}

type UpdatePlanInput struct {
	Date     *time.Time `json:"date"`
	Sales    *string    `json:"sales"`
	MasterID *string    `json:"masterId"`
	VisitCat *string    `json:"visitCat"`
	Notes    *string    `json:"notes"`
	Order    *string    `json:"order"`
}

func (s *PlanService) List(ctx context.Context, start, end *time.Time) ([]entity.Plan, error) {
	return s.plans.List(ctx, start, end)
}

// Create inserts a plan, auto-computing the rep's visit sequence number
// for that day when the caller did not supply one.
func (s *PlanService) Create(ctx context.Context, input *CreatePlanInput) (*entity.Plan, error) {
	plan := &entity.Plan{
		ID:       uuid.New().String(),
		Date:     input.Date,
		Sales:    input.Sales,
		MasterID: input.MasterID,
		VisitCat: input.VisitCat,
		Notes:    input.Notes,
		Order:    input.Order,
	}
	if plan.Order == "" {
		order, err := s.nextOrder(ctx, s.plans, plan.Sales, plan.Date)
		if err != nil {
			return nil, err
		}
		plan.Order = order
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Update(ctx context.Context, id string, input *UpdatePlanInput) (*entity.Plan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Date != nil {
		plan.Date = *input.Date
	}
	if input.Sales != nil {
		plan.Sales = *input.Sales
	}
	if input.MasterID != nil {
		plan.MasterID = input.MasterID
	}
	if input.VisitCat != nil {
		plan.VisitCat = *input.VisitCat
	}
	if input.Notes != nil {
		plan.Notes = *input.Notes
	}
	if input.Order != nil {
		plan.Order = *input.Order
	}
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

func (s *PlanService) DeleteAll(ctx context.Context) error {
	return s.plans.DeleteAll(ctx)
}

func (s *PlanService) nextOrder(ctx context.Context, plans *repository.PlanRepository, sales string, day time.Time) (string, error) {
	max, err := plans.MaxOrder(ctx, sales, day)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(max + 1), nil
}

// ImportPlans reconciles scheduled-visit rows, assigning each one the
// next visit sequence number for its rep and day.
func (s *PlanService) ImportPlans(ctx context.Context, rows []importer.Row) *ImportSummary {
	summary := &ImportSummary{Errors: []string{}}

	for i, row := range rows {
		name, hasName := importer.Field(row, storeNameKeys...)
		code, hasCode := importer.Field(row, storeCodeKeys...)
		if !hasName && !hasCode {
			summary.Errors = append(summary.Errors, rowErrorf(i, "missing store name and code"))
			continue
		}
		sales, hasSales := importer.Field(row, planSalesKeys...)
		if !hasSales {
			summary.Errors = append(summary.Errors, rowErrorf(i, "missing sales name"))
			continue
		}

		// Held back until the row commits; see ImportVisits.
		var warnings []string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stores := repository.NewStoreRepository(tx)
			plans := repository.NewPlanRepository(tx)

			store, created, err := ResolveOrCreateStore(ctx, stores, code, name)
			if err != nil {
				return err
			}
			if created {
				warnings = append(warnings,
					rowErrorf(i, "store %q not found, auto-provisioned", store.Code))
			}

			rawDate, _ := fieldRaw(row, planDateKeys...)
			date, dateOK := importer.NormalizeDate(rawDate)
			if !dateOK {
				warnings = append(warnings,
					rowErrorf(i, "unparseable date, defaulted to today"))
			}

			order, err := s.nextOrder(ctx, plans, sales, date)
			if err != nil {
				return err
			}

			plan := &entity.Plan{
				ID:       uuid.New().String(),
				Date:     date,
				Sales:    sales,
				MasterID: &store.ID,
				Order:    order,
			}
			plan.VisitCat, _ = importer.Field(row, planCatKeys...)
			plan.Notes, _ = importer.Field(row, planNoteKeys...)

			return plans.Create(ctx, plan)
		})
		if err != nil {
			summary.Errors = append(summary.Errors, rowErrorf(i, "%s", err.Error()))
			continue
		}
		summary.Warnings = append(summary.Warnings, warnings...)
		summary.SuccessCount++
	}
	return summary
}
