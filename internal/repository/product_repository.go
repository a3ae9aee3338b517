package repository

import (
	"context"

	"github.com/aroifoods/salescrm/internal/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) List(ctx context.Context, search string) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	var products []entity.Product
	err := query.Order("code ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Product{}).Error
}
