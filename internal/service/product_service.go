package service

import (
	"context"
	"errors"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateProductCode is returned when a catalog item with this
// code already exists.
var ErrDuplicateProductCode = errors.New("product code already exists")

type ProductService struct {
	products *repository.ProductRepository
}

func NewProductService(products *repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

type CreateProductInput struct {
	Code     string  `json:"code" binding:"required,min=1"`
	Name     string  `json:"name" binding:"required,min=1"`
	Category string  `json:"category"`
	Price    float64 `json:"price" binding:"omitempty,min=0"`
	Unit     string  `json:"unit"`
	Status   string  `json:"status"`
}

func (s *ProductService) List(ctx context.Context, search string) ([]entity.Product, error) {
	return s.products.List(ctx, search)
}

func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		ID:       uuid.New().String(),
		Code:     input.Code,
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Unit:     input.Unit,
		Status:   input.Status,
	}
	if product.Status == "" {
		product.Status = entity.ProductStatusActive
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProductCode
		}
		return nil, err
	}
	return product, nil
}
