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
	issueDateKeys     = []string{"วันที่", "date", "วันที่แจ้ง"}
	issueTypeKeys     = []string{"ประเภท", "type", "ประเภทปัญหา"}
	issueDetailKeys   = []string{"รายละเอียด", "detail", "ปัญหา"}
	issueRecorderKeys = []string{"ผู้บันทึก", "recorder", "ผู้แจ้ง"}
	issueStatusKeys   = []string{"สถานะ", "status"}
)

type IssueService struct {
	db     *gorm.DB
	issues *repository.IssueRepository
	logger *zap.Logger
}

func NewIssueService(db *gorm.DB, issues *repository.IssueRepository, logger *zap.Logger) *IssueService {
	return &IssueService{db: db, issues: issues, logger: logger}
}

type CreateIssueInput struct {
	Date     time.Time `json:"date" binding:"required"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail" binding:"required,min=1"`
	Recorder string    `json:"recorder"`
	Status   string    `json:"status"`
	MasterID *string   `json:"masterId"`
}

type UpdateIssueInput struct {
	Date     *time.Time `json:"date"`
	Type     *string    `json:"type"`
	Detail   *string    `json:"detail"`
	Recorder *string    `json:"recorder"`
	Status   *string    `json:"status"`
	MasterID *string    `json:"masterId"`
}

func (s *IssueService) List(ctx context.Context, search, issueType, status string) ([]entity.Issue, error) {
	return s.issues.List(ctx, search, issueType, status)
}

func (s *IssueService) Create(ctx context.Context, input *CreateIssueInput) (*entity.Issue, error) {
	issue := &entity.Issue{
		ID:       uuid.New().String(),
		Date:     input.Date,
		Type:     input.Type,
		Detail:   input.Detail,
		Recorder: input.Recorder,
		Status:   input.Status,
		MasterID: input.MasterID,
	}
	if issue.Status == "" {
		issue.Status = entity.IssueStatusPending
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) Update(ctx context.Context, id string, input *UpdateIssueInput) (*entity.Issue, error) {
	issue, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Date != nil {
		issue.Date = *input.Date
	}
	if input.Type != nil {
		issue.Type = *input.Type
	}
	if input.Detail != nil {
		issue.Detail = *input.Detail
	}
	if input.Recorder != nil {
		issue.Recorder = *input.Recorder
	}
	if input.Status != nil {
		issue.Status = *input.Status
	}
	if input.MasterID != nil {
		issue.MasterID = input.MasterID
	}
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) Delete(ctx context.Context, id string) error {
	return s.issues.Delete(ctx, id)
}

// ImportIssues reconciles complaint rows. The ticket detail is the one
// required field; status is inferred from free text.
func (s *IssueService) ImportIssues(ctx context.Context, rows []importer.Row) *ImportSummary {
	summary := &ImportSummary{Errors: []string{}}

	for i, row := range rows {
		detail, hasDetail := importer.Field(row, issueDetailKeys...)
		if !hasDetail {
			summary.Errors = append(summary.Errors, rowErrorf(i, "missing issue detail"))
			continue
		}

		// Held back until the row commits; see ImportVisits.
		var warnings []string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stores := repository.NewStoreRepository(tx)
			issues := repository.NewIssueRepository(tx)

			issue := &entity.Issue{
				ID:     uuid.New().String(),
				Detail: detail,
			}

			name, hasName := importer.Field(row, storeNameKeys...)
			code, hasCode := importer.Field(row, storeCodeKeys...)
			if hasName || hasCode {
				store, created, err := ResolveOrCreateStore(ctx, stores, code, name)
				if err != nil {
					return err
				}
				if created {
					warnings = append(warnings,
						rowErrorf(i, "store %q not found, auto-provisioned", store.Code))
				}
				issue.MasterID = &store.ID
			}

			rawDate, _ := fieldRaw(row, issueDateKeys...)
			date, dateOK := importer.NormalizeDate(rawDate)
			if !dateOK {
				warnings = append(warnings,
					rowErrorf(i, "unparseable date, defaulted to today"))
			}
			issue.Date = date

			issue.Type, _ = importer.Field(row, issueTypeKeys...)
			issue.Recorder, _ = importer.Field(row, issueRecorderKeys...)
			rawStatus, _ := importer.Field(row, issueStatusKeys...)
			issue.Status = importer.IssueStatus(rawStatus)

			return issues.Create(ctx, issue)
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
