package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateCode is returned when a caller-supplied store code
	// already exists.
	ErrDuplicateCode = errors.New("store code already exists")
	// ErrCodeExhausted is returned when code generation kept colliding
	// after retries.
	ErrCodeExhausted = errors.New("failed to generate a unique store code")
)

// Attempts at generating a store code before the collision is surfaced.
const codeRetryAttempts = 3

// Candidate header spellings per canonical store field, covering the
// Thai and English variants seen in rep spreadsheets.
var (
	storeNameKeys    = []string{"ชื่อร้าน", "name", "store_name", "ชื่อ"}
	storeCodeKeys    = []string{"รหัสร้าน", "code", "store_code", "รหัส"}
	storeOwnerKeys   = []string{"เจ้าของ", "owner", "ชื่อเจ้าของ"}
	storeTypeKeys    = []string{"ประเภทร้าน", "type", "ประเภท"}
	customerTypeKeys = []string{"ประเภทลูกค้า", "customerType", "customer_type"}
	storePhoneKeys   = []string{"เบอร์โทร", "phone", "โทรศัพท์", "tel"}
	storeAddressKeys = []string{"ที่อยู่", "address"}
	productUsedKeys  = []string{"สินค้าที่ใช้", "productUsed", "product_used", "สินค้า"}
	quantityKeys     = []string{"ปริมาณ", "quantity", "จำนวน"}
	orderPeriodKeys  = []string{"รอบการสั่ง", "orderPeriod", "order_period"}
	supplierKeys     = []string{"ซัพพลายเออร์", "supplier", "ร้านที่ซื้อ"}
	paymentKeys      = []string{"การชำระเงิน", "payment", "เงื่อนไขการชำระ"}
	paymentScoreKeys = []string{"คะแนนการชำระ", "paymentScore", "payment_score"}
	storeStatusKeys  = []string{"สถานะ", "status"}
	closeReasonKeys  = []string{"เหตุผลที่ปิด", "closeReason", "close_reason"}
)

type StoreService struct {
	db         *gorm.DB
	stores     *repository.StoreRepository
	codePrefix string
	codeWidth  int
	logger     *zap.Logger
}

func NewStoreService(db *gorm.DB, stores *repository.StoreRepository, codePrefix string, codeWidth int, logger *zap.Logger) *StoreService {
	if codePrefix == "" {
		codePrefix = "S"
	}
	if codeWidth <= 0 {
		codeWidth = 4
	}
	return &StoreService{
		db:         db,
		stores:     stores,
		codePrefix: codePrefix,
		codeWidth:  codeWidth,
		logger:     logger,
	}
}

type CreateStoreInput struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required,min=1"`
	Owner        string  `json:"owner"`
	Type         string  `json:"type"`
	CustomerType string  `json:"customerType"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	ProductUsed  string  `json:"productUsed"`
	Quantity     string  `json:"quantity"`
	OrderPeriod  string  `json:"orderPeriod"`
	Supplier     string  `json:"supplier"`
	Payment      string  `json:"payment"`
	PaymentScore *int    `json:"paymentScore" binding:"omitempty,min=1,max=5"`
	Status       string  `json:"status"`
	CloseReason  *string `json:"closeReason"`
}

type UpdateStoreInput struct {
	Code         *string `json:"code"`
	Name         *string `json:"name"`
	Owner        *string `json:"owner"`
	Type         *string `json:"type"`
	CustomerType *string `json:"customerType"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ProductUsed  *string `json:"productUsed"`
	Quantity     *string `json:"quantity"`
	OrderPeriod  *string `json:"orderPeriod"`
	Supplier     *string `json:"supplier"`
	Payment      *string `json:"payment"`
	PaymentScore *int    `json:"paymentScore"`
	Status       *string `json:"status"`
	CloseReason  *string `json:"closeReason"`
}

func (s *StoreService) List(ctx context.Context, search, storeType, status string) ([]entity.Store, error) {
	return s.stores.List(ctx, search, storeType, status)
}

func (s *StoreService) Get(ctx context.Context, id string) (*entity.Store, error) {
	return s.stores.FindByID(ctx, id)
}

// Create inserts a store. An explicit code is used as-is (duplicate ⇒
// ErrDuplicateCode); an absent code is generated from the sequence and
// retried on collision with concurrent creations.
func (s *StoreService) Create(ctx context.Context, input *CreateStoreInput) (*entity.Store, error) {
	store := &entity.Store{
		ID:           uuid.New().String(),
		Code:         strings.TrimSpace(input.Code),
		Name:         strings.TrimSpace(input.Name),
		Owner:        input.Owner,
		Type:         input.Type,
		CustomerType: input.CustomerType,
		Phone:        input.Phone,
		Address:      input.Address,
		ProductUsed:  input.ProductUsed,
		Quantity:     input.Quantity,
		OrderPeriod:  input.OrderPeriod,
		Supplier:     input.Supplier,
		Payment:      input.Payment,
		PaymentScore: input.PaymentScore,
		Status:       input.Status,
		CloseReason:  input.CloseReason,
	}
	if store.Payment == "" {
		store.Payment = entity.StoreDefaultPayment
	}
	if store.Status == "" {
		store.Status = entity.StoreStatusOpen
	}

	if store.Code != "" {
		if err := s.stores.Create(ctx, store); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateCode
			}
			return nil, err
		}
		return store, nil
	}

	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code, err := s.nextCode(ctx, s.stores)
		if err != nil {
			return nil, err
		}
		store.Code = code
		err = s.stores.Create(ctx, store)
		if err == nil {
			return store, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		s.logger.Warn("store code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt+1))
	}
	return nil, ErrCodeExhausted
}

func (s *StoreService) Update(ctx context.Context, id string, input *UpdateStoreInput) (*entity.Store, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != nil {
		store.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.Owner != nil {
		store.Owner = *input.Owner
	}
	if input.Type != nil {
		store.Type = *input.Type
	}
	if input.CustomerType != nil {
		store.CustomerType = *input.CustomerType
	}
	if input.Phone != nil {
		store.Phone = *input.Phone
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.ProductUsed != nil {
		store.ProductUsed = *input.ProductUsed
	}
	if input.Quantity != nil {
		store.Quantity = *input.Quantity
	}
	if input.OrderPeriod != nil {
		store.OrderPeriod = *input.OrderPeriod
	}
	if input.Supplier != nil {
		store.Supplier = *input.Supplier
	}
	if input.Payment != nil {
		store.Payment = *input.Payment
	}
	if input.PaymentScore != nil {
		store.PaymentScore = input.PaymentScore
	}
	if input.Status != nil {
		store.Status = *input.Status
	}
	if input.CloseReason != nil {
		store.CloseReason = input.CloseReason
	}
	if err := s.stores.Update(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return store, nil
}

func (s *StoreService) Delete(ctx context.Context, id string) error {
	if _, err := s.stores.FindByID(ctx, id); err != nil {
		return err
	}
	return s.stores.Delete(ctx, id)
}

func (s *StoreService) DeleteAll(ctx context.Context) error {
	return s.stores.DeleteAll(ctx)
}

// nextCode scans the highest zero-padded suffix under the prefix and
// increments it. The repo argument lets import rows sequence inside
// their own transaction.
func (s *StoreService) nextCode(ctx context.Context, stores *repository.StoreRepository) (string, error) {
	maxCode, err := stores.MaxCode(ctx, s.codePrefix)
	if err != nil {
		return "", err
	}
	seq := 0
	if maxCode != "" {
		suffix := strings.TrimPrefix(maxCode, s.codePrefix)
		if n, err := strconv.Atoi(suffix); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%0*d", s.codePrefix, s.codeWidth, seq+1), nil
}

// ResolveOrCreateStore finds a store by case-insensitive name, then by
// exact code; a miss provisions a new store with the supplied identifier
// as both code and name. The created flag distinguishes a match from a
// silent provision so imports can surface the latter as warnings.
func ResolveOrCreateStore(ctx context.Context, stores *repository.StoreRepository, code, name string) (*entity.Store, bool, error) {
	if name != "" {
		store, err := stores.FindByName(ctx, name)
		if err == nil {
			return store, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}
	if code != "" {
		store, err := stores.FindByCode(ctx, code)
		if err == nil {
			return store, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}

	ident := strings.TrimSpace(code)
	if ident == "" {
		ident = strings.TrimSpace(name)
	}
	if ident == "" {
		return nil, false, fmt.Errorf("no store identifier supplied")
	}

	store := &entity.Store{
		ID:      uuid.New().String(),
		Code:    ident,
		Name:    ident,
		Payment: entity.StoreDefaultPayment,
		Status:  entity.StoreStatusOpen,
	}
	if err := stores.Create(ctx, store); err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// ImportStores reconciles a batch of loosely-typed rows. Rows are
// processed strictly sequentially; each row upserts by name/code match
// inside its own transaction and a row failure never aborts the batch.
func (s *StoreService) ImportStores(ctx context.Context, rows []importer.Row) *ImportReport {
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

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			stores := repository.NewStoreRepository(tx)

			store, found, findErr := s.findExisting(ctx, stores, name, code)
			if findErr != nil {
				return findErr
			}
			if !found {
				store = &entity.Store{ID: uuid.New().String()}
				store.Code = code
				if store.Code == "" {
					generated, genErr := s.nextCode(ctx, stores)
					if genErr != nil {
						return genErr
					}
					store.Code = generated
				}
			}

			s.applyRow(store, row, name)
			if found {
				return stores.Update(ctx, store)
			}
			return stores.Create(ctx, store)
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
		report.Success++
	}
	return report
}

func (s *StoreService) findExisting(ctx context.Context, stores *repository.StoreRepository, name, code string) (*entity.Store, bool, error) {
	if name != "" {
		store, err := stores.FindByName(ctx, name)
		if err == nil {
			return store, true, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}
	if code != "" {
		store, err := stores.FindByCode(ctx, code)
		if err == nil {
			return store, true, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}
	return nil, false, nil
}

// applyRow copies every resolvable field of the row onto the store,
// leaving unresolved fields untouched so re-imports never blank data.
func (s *StoreService) applyRow(store *entity.Store, row importer.Row, name string) {
	if name != "" {
		store.Name = name
	}
	if store.Name == "" {
		store.Name = store.Code
	}
	if v, ok := importer.Field(row, storeOwnerKeys...); ok {
		store.Owner = v
	}
	if v, ok := importer.Field(row, storeTypeKeys...); ok {
		store.Type = v
	}
	if v, ok := importer.Field(row, customerTypeKeys...); ok {
		store.CustomerType = v
	}
	if v, ok := importer.Field(row, storePhoneKeys...); ok {
		store.Phone = v
	}
	if v, ok := importer.Field(row, storeAddressKeys...); ok {
		store.Address = v
	}
	if v, ok := importer.Field(row, productUsedKeys...); ok {
		store.ProductUsed = v
	}
	if v, ok := importer.Field(row, quantityKeys...); ok {
		store.Quantity = v
	}
	if v, ok := importer.Field(row, orderPeriodKeys...); ok {
		store.OrderPeriod = v
	}
	if v, ok := importer.Field(row, supplierKeys...); ok {
		store.Supplier = v
	}
	if v, ok := importer.Field(row, paymentKeys...); ok {
		store.Payment = v
	}
	if store.Payment == "" {
		store.Payment = entity.StoreDefaultPayment
	}
	if score, ok := importer.Number(row, paymentScoreKeys...); ok {
		if n := int(score); n >= 1 && n <= 5 {
			store.PaymentScore = &n
		}
	}
	if v, ok := importer.Field(row, storeStatusKeys...); ok {
		store.Status = importer.StoreStatus(v)
	}
	if store.Status == "" {
		store.Status = entity.StoreStatusOpen
	}
	if v, ok := importer.Field(row, closeReasonKeys...); ok {
		reason := v
		store.CloseReason = &reason
	}
}

var storeExportHeaders = []string{
	"รหัสร้าน", "ชื่อร้าน", "เจ้าของ", "ประเภทร้าน", "ประเภทลูกค้า",
	"เบอร์โทร", "ที่อยู่", "สินค้าที่ใช้", "การชำระเงิน", "สถานะ",
}

// ExportExcel renders the filtered store list as a styled workbook.
func (s *StoreService) ExportExcel(ctx context.Context, search, storeType, status string) (*excelize.File, string, error) {
	stores, err := s.stores.List(ctx, search, storeType, status)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Stores"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range storeExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, store := range stores {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), store.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), store.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), store.Owner)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), store.Type)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), store.CustomerType)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), store.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), store.Address)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), store.ProductUsed)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), store.Payment)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), store.Status)
	}

	filename := fmt.Sprintf("stores-%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
