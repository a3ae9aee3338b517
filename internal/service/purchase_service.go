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
	purchaseRoundKeys  = []string{"รอบบิล", "round", "รอบ"}
	purchaseDateKeys   = []string{"วันที่", "date", "วันที่สั่ง"}
	purchaseAmountKeys = []string{"ยอด", "amount", "จำนวนเงิน", "ยอดสั่งซื้อ"}
	purchaseStatusKeys = []string{"สถานะ", "status", "การชำระ"}
)

type PurchaseService struct {
	db        *gorm.DB
	purchases *repository.PurchaseRepository
	logger    *zap.Logger
}

func NewPurchaseService(db *gorm.DB, purchases *repository.PurchaseRepository, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{db: db, purchases: purchases, logger: logger}
}

type CreatePurchaseInput struct {
	Round   string    `json:"round"`
	Date    time.Time `json:"date" binding:"required"`
	Amount  float64   `json:"amount" binding:"omitempty,min=0"`
	Status  string    `json:"status"`
	StoreID *string   `json:"storeId"`
}

func (s *PurchaseService) List(ctx context.Context, search, status string) ([]entity.Purchase, error) {
	return s.purchases.List(ctx, search, status)
}

func (s *PurchaseService) Create(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	purchase := &entity.Purchase{
		ID:      uuid.New().String(),
		Round:   input.Round,
		Date:    input.Date,
		Amount:  input.Amount,
		Status:  input.Status,
		StoreID: input.StoreID,
	}
	if purchase.Status == "" {
		purchase.Status = entity.PurchaseStatusPending
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ImportPurchases reconciles order-tracking rows. Amounts arrive with
// thousands separators and statuses as free text or emoji markers; both
// are normalized before insert.
func (s *PurchaseService) ImportPurchases(ctx context.Context, rows []importer.Row) *ImportSummary {
	summary := &ImportSummary{Errors: []string{}}

	for i, row := range rows {
		name, hasName := importer.Field(row, storeNameKeys...)
		code, hasCode := importer.Field(row, storeCodeKeys...)
		if !hasName && !hasCode {
			summary.Errors = append(summary.Errors, rowErrorf(i, "missing store name and code"))
			continue
		}

		// Held back until the row commits; see ImportVisits.
		var warnings []string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stores := repository.NewStoreRepository(tx)
			purchases := repository.NewPurchaseRepository(tx)

			store, created, err := ResolveOrCreateStore(ctx, stores, code, name)
			if err != nil {
				return err
			}
			if created {
				warnings = append(warnings,
					rowErrorf(i, "store %q not found, auto-provisioned", store.Code))
			}

			rawDate, _ := fieldRaw(row, purchaseDateKeys...)
			date, dateOK := importer.NormalizeDate(rawDate)
			if !dateOK {
				warnings = append(warnings,
					rowErrorf(i, "unparseable date, defaulted to today"))
			}

			purchase := &entity.Purchase{
				ID:      uuid.New().String(),
				Date:    date,
				StoreID: &store.ID,
			}
			purchase.Round, _ = importer.Field(row, purchaseRoundKeys...)
			purchase.Amount, _ = importer.Number(row, purchaseAmountKeys...)
			rawStatus, _ := importer.Field(row, purchaseStatusKeys...)
			purchase.Status = importer.PaymentStatus(rawStatus)

			return purchases.Create(ctx, purchase)
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
