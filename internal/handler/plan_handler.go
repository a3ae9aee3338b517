package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// List GET /plans?startDate&endDate
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), queryDate(c, "startDate"), queryDate(c, "endDate"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, plans)
}

// Create POST /plans
func (h *PlanHandler) Create(c *gin.Context) {
	var input service.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	plan, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, plan)
}

// Update PUT /plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	var input service.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	plan, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "plan not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, plan)
}

// Delete DELETE /plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "plan not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Import POST /plans/import: from {plans: [...]}.
func (h *PlanHandler) Import(c *gin.Context) {
	var body struct {
		Plans []importer.Row `json:"plans" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		ValidationFailed(c, err)
		return
	}
	Success(c, h.svc.ImportPlans(c.Request.Context(), body.Plans))
}

// ImportExcel POST /plans/import/excel
func (h *PlanHandler) ImportExcel(c *gin.Context) {
	rows, ok := excelRows(c)
	if !ok {
		return
	}
	Success(c, h.svc.ImportPlans(c.Request.Context(), rows))
}
