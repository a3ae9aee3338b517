package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/importer"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc *service.IssueService
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

// List GET /issues?search&type&status
func (h *IssueHandler) List(c *gin.Context) {
	issues, err := h.svc.List(c.Request.Context(), c.Query("search"), c.Query("type"), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, issues)
}

// Create POST /issues
func (h *IssueHandler) Create(c *gin.Context) {
	var input service.CreateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	issue, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, issue)
}

// Update PUT /issues/:id
func (h *IssueHandler) Update(c *gin.Context) {
	var input service.UpdateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	issue, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "issue not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, issue)
}

// Delete DELETE /issues/:id
func (h *IssueHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "issue not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// Import POST /issues/import: from {issues: [...]}.
func (h *IssueHandler) Import(c *gin.Context) {
	var body struct {
		Issues []importer.Row `json:"issues" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		ValidationFailed(c, err)
		return
	}
	Success(c, h.svc.ImportIssues(c.Request.Context(), body.Issues))
}

// ImportExcel POST /issues/import/excel
func (h *IssueHandler) ImportExcel(c *gin.Context) {
	rows, ok := excelRows(c)
	if !ok {
		return
	}
	Success(c, h.svc.ImportIssues(c.Request.Context(), rows))
}
