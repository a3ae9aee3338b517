package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List GET /products?search
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Header("Cache-Control", "private, max-age=60")
	Success(c, products)
}

// Create POST /products: duplicate code surfaces as 409.
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	product, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateProductCode) {
			Conflict(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Created(c, product)
}
