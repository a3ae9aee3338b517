package handler

import (
	"errors"
	"fmt"

	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	svc *service.StoreService
}

func NewStoreHandler(svc *service.StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

// List GET /stores?search&type&status
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.svc.List(c.Request.Context(), c.Query("search"), c.Query("type"), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Header("Cache-Control", "private, max-age=30")
	Success(c, stores)
}

// Create POST /stores
func (h *StoreHandler) Create(c *gin.Context) {
	var input service.CreateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}

	store, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateCode):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrCodeExhausted):
			Conflict(c, err.Error())
		default:
			InternalError(c, err.Error())
		}
		return
	}
	Created(c, store)
}

// Get GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "store not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, store)
}

// Update PUT /stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	var input service.UpdateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}

	store, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "store not found")
		case errors.Is(err, service.ErrDuplicateCode):
			Conflict(c, err.Error())
		default:
			InternalError(c, err.Error())
		}
		return
	}
	Success(c, store)
}

// Delete DELETE /stores/:id: cascades to visits and plans.
func (h *StoreHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "store not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// DeleteAll DELETE /stores: bulk-clear of stores, visits and plans.
func (h *StoreHandler) DeleteAll(c *gin.Context) {
	if err := h.svc.DeleteAll(c.Request.Context()); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Import POST /stores/import: bulk upsert-or-create from {stores: [...]}.
func (h *StoreHandler) Import(c *gin.Context) {
	var body struct {
		Stores []importer.Row `json:"stores" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		ValidationFailed(c, err)
		return
	}
	Success(c, h.svc.ImportStores(c.Request.Context(), body.Stores))
}

// ImportExcel POST /stores/import/excel: multipart workbook upload.
func (h *StoreHandler) ImportExcel(c *gin.Context) {
	rows, ok := excelRows(c)
	if !ok {
		return
	}
	Success(c, h.svc.ImportStores(c.Request.Context(), rows))
}

// Export GET /stores/export: styled workbook of the filtered store list.
func (h *StoreHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportExcel(c.Request.Context(), c.Query("search"), c.Query("type"), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, err.Error())
	}
}

// excelRows extracts importer rows from the uploaded "file" form field.
func excelRows(c *gin.Context) ([]importer.Row, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file upload")
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "unreadable file upload: "+err.Error())
		return nil, false
	}
	defer file.Close()

	rows, err := importer.RowsFromExcel(file)
	if err != nil {
		Error(c, 40000, err.Error())
		return nil, false
	}
	return rows, true
}
