package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindByName matches the store name exactly, ignoring case.
func (r *StoreRepository) FindByName(ctx context.Context, name string) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

func (r *StoreRepository) FindByCode(ctx context.Context, code string) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// MaxCode returns the lexicographically greatest generated code under
// the prefix. Only prefix+digits codes count: auto-provisioned stores
// carry free-text codes (often starting with the same letter) that must
// not poison the sequence. Correct only while generated codes keep equal
// zero-padded width, which nextStoreCode enforces.
func (r *StoreRepository) MaxCode(ctx context.Context, prefix string) (string, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).
		Where("code ~ ?", "^"+regexp.QuoteMeta(prefix)+"[0-9]+$").
		Order("code DESC").
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return store.Code, nil
}

func (r *StoreRepository) Update(ctx context.Context, store *entity.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes the store and its dependent visit/plan rows.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", id).Delete(&entity.Visit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("master_id = ?", id).Delete(&entity.Plan{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Store{}).Error
	})
}

// DeleteAll clears every visit, plan and store row (bulk-clear endpoint).
func (r *StoreRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Visit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entity.Plan{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&entity.Store{}).Error
	})
}

// List filters stores by free-text search (name/code/owner), type and
// status. All list endpoints return the full result set; the data volume
// is a few thousand stores at most.
func (r *StoreRepository) List(ctx context.Context, search, storeType, status string) ([]entity.Store, error) {
	query := r.db.WithContext(ctx).Model(&entity.Store{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR owner ILIKE ?", pattern, pattern, pattern)
	}
	if storeType != "" {
		query = query.Where("type = ?", storeType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var stores []entity.Store
	err := query.Order("code ASC").Find(&stores).Error
	return stores, err
}
