package service

import (
	"context"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	visitDateKeys     = []string{"วันที่", "date", "วันที่เข้าพบ"}
	visitSalesKeys    = []string{"เซลล์", "sales", "พนักงานขาย", "ผู้เข้าพบ"}
	visitCatKeys      = []string{"หัวข้อ", "visitCat", "topic", "หัวข้อการเข้าพบ"}
	visitTypeKeys     = []string{"ประเภทการเข้าพบ", "visitType", "visit_type"}
	dealStatusKeys    = []string{"สถานะดีล", "dealStatus", "ผลการเข้าพบ", "deal_status"}
	visitNoteKeys     = []string{"บันทึก", "notes", "โน้ต", "หมายเหตุ"}
	visitCloseReasons = []string{"เหตุผลที่ปิด", "closeReason", "close_reason"}
)

type VisitService struct {
	db     *gorm.DB
	visits *repository.VisitRepository
	logger *zap.Logger
}

func NewVisitService(db *gorm.DB, visits *repository.VisitRepository, logger *zap.Logger) *VisitService {
	return &VisitService{db: db, visits: visits, logger: logger}
}

type CreateVisitInput struct {
	Date        time.Time         `json:"date" binding:"required"`
	Sales       string            `json:"sales" binding:"required,min=1"`
	MasterID    *string           `json:"masterId"`
	VisitCat    string            `json:"visitCat"`
	VisitType   string            `json:"visitType"`
	DealStatus  string            `json:"dealStatus"`
	CloseReason string            `json:"closeReason"`
	Notes       map[string]string `json:"notes"`
}

func (s *VisitService) List(ctx context.Context, search, sales string, start, end *time.Time) ([]entity.Visit, error) {
	return s.visits.List(ctx, search, sales, start, end)
}

func (s *VisitService) Create(ctx context.Context, input *CreateVisitInput) (*entity.Visit, error) {
	visit := &entity.Visit{
		ID:          uuid.New().String(),
		Date:        input.Date,
		Sales:       input.Sales,
		MasterID:    input.MasterID,
		VisitCat:    input.VisitCat,
		VisitType:   input.VisitType,
		DealStatus:  input.DealStatus,
		CloseReason: input.CloseReason,
	}
	if visit.DealStatus == "" {
		visit.DealStatus = entity.DealStatusOpen
	}
	if len(input.Notes) > 0 {
		notes := entity.JSONB{}
		for k, v := range input.Notes {
			notes[k] = v
		}
		visit.Notes = notes
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *VisitService) Delete(ctx context.Context, id string) error {
	return s.visits.Delete(ctx, id)
}

func (s *VisitService) DeleteAll(ctx context.Context) error {
	return s.visits.DeleteAll(ctx)
}

// ImportVisits reconciles visit rows one at a time. A row referencing an
// unknown store provisions that store (reported as a warning); every row
// becomes a new visit record, duplicates included.
func (s *VisitService) ImportVisits(ctx context.Context, rows []importer.Row) *ImportReport {
	report := &ImportReport{Errors: []RowError{}}

	for i, row := range rows {
		name, hasName := importer.Field(row, storeNameKeys...)
		code, hasCode := importer.Field(row, storeCodeKeys...)
		if !hasName && !hasCode {
			report.Failed++
			report.Errors = append(report.Errors, RowError{
				Index: rowNumber(i),
				Name:  "",
				Error: "missing store name and code",
			})
			continue
		}

		// Warnings are held back until the row commits; a rollback must
		// not leave a claim that a store was provisioned.
		var warnings []string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stores := repository.NewStoreRepository(tx)
			visits := repository.NewVisitRepository(tx)

			store, created, err := ResolveOrCreateStore(ctx, stores, code, name)
			if err != nil {
				return err
			}
			if created {
				warnings = append(warnings,
					rowErrorf(i, "store %q not found, auto-provisioned", store.Code))
			}

			rawDate, _ := fieldRaw(row, visitDateKeys...)
			date, dateOK := importer.NormalizeDate(rawDate)
			if !dateOK {
				warnings = append(warnings,
					rowErrorf(i, "unparseable date, defaulted to today"))
			}

			visit := &entity.Visit{
				ID:       uuid.New().String(),
				Date:     date,
				MasterID: &store.ID,
			}
			visit.Sales, _ = importer.Field(row, visitSalesKeys...)
			visit.VisitCat, _ = importer.Field(row, visitCatKeys...)
			visit.VisitType, _ = importer.Field(row, visitTypeKeys...)
			if v, ok := importer.Field(row, dealStatusKeys...); ok {
				visit.DealStatus = importer.DealStatus(v)
			} else {
				visit.DealStatus = entity.DealStatusOpen
			}
			visit.CloseReason, _ = importer.Field(row, visitCloseReasons...)
			if note, ok := importer.Field(row, visitNoteKeys...); ok {
				visit.Notes = entity.JSONB{"1": note}
			}

			return visits.Create(ctx, visit)
		})
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{
				Index: rowNumber(i),
				Name:  name,
				Error: err.Error(),
			})
			continue
		}
		report.Warnings = append(report.Warnings, warnings...)
		report.Success++
	}
	return report
}

// fieldRaw returns the untyped value under the first present candidate
// key, for values (dates) that must not be string-coerced up front.
func fieldRaw(row importer.Row, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, exists := row[k]; exists && v != nil {
			return v, true
		}
	}
	return nil, false
}
