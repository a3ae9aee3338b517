package handler

import (
	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	svc *service.PurchaseService
}

func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// List GET /OrderTracking?search&status
func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.svc.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, purchases)
}

// Create POST /OrderTracking
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input service.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	purchase, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, purchase)
}

// Import POST /OrderTracking/import: the payload is a flat array, not
// a wrapped object like the other import routes; existing spreadsheets
// sync against this shape.
func (h *PurchaseHandler) Import(c *gin.Context) {
	var rows []importer.Row
	if err := c.ShouldBindJSON(&rows); err != nil {
		ValidationFailed(c, err)
		return
	}
	Success(c, h.svc.ImportPurchases(c.Request.Context(), rows))
}

// ImportExcel POST /OrderTracking/import/excel
func (h *PurchaseHandler) ImportExcel(c *gin.Context) {
	rows, ok := excelRows(c)
	if !ok {
		return
	}
	Success(c, h.svc.ImportPurchases(c.Request.Context(), rows))
}
