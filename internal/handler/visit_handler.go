package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	svc *service.VisitService
}

func NewVisitHandler(svc *service.VisitService) *VisitHandler {
	return &VisitHandler{svc: svc}
}

// List GET /visits?search&sales&startDate&endDate: range inclusive.
func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.svc.List(c.Request.Context(),
		c.Query("search"), c.Query("sales"),
		queryDate(c, "startDate"), queryDate(c, "endDate"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, visits)
}

// Create POST /visits
func (h *VisitHandler) Create(c *gin.Context) {
	var input service.CreateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	visit, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, visit)
}

// Delete DELETE /visits/:id
func (h *VisitHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "visit not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// DeleteAll DELETE /visits
func (h *VisitHandler) DeleteAll(c *gin.Context) {
	if err := h.svc.DeleteAll(c.Request.Context()); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Import POST /visits/import: from {visits: [...]}.
func (h *VisitHandler) Import(c *gin.Context) {
	var body struct {
		Visits []importer.Row `json:"visits" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		ValidationFailed(c, err)
		return
	}
	Success(c, h.svc.ImportVisits(c.Request.Context(), body.Visits))
}

// ImportExcel POST /visits/import/excel
func (h *VisitHandler) ImportExcel(c *gin.Context) {
	rows, ok := excelRows(c)
	if !ok {
		return
	}
	Success(c, h.svc.ImportVisits(c.Request.Context(), rows))
}
