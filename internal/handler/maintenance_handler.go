package handler

import (
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	svc *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

// Nuclear DELETE /nuclear: wipes every entity except profiles.
func (h *MaintenanceHandler) Nuclear(c *gin.Context) {
	if err := h.svc.Nuclear(c.Request.Context()); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"wiped": true})
}

// StorageUsage GET /storage-usage
func (h *MaintenanceHandler) StorageUsage(c *gin.Context) {
	report, err := h.svc.StorageUsage(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, report)
}

// CleanSales GET /clean-sales: strips the unregistered marker from
// historical rep names.
func (h *MaintenanceHandler) CleanSales(c *gin.Context) {
	n, err := h.svc.CleanSales(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"updated": n})
}

// FixDates GET /fix-dates: shifts Buddhist-Era-polluted dates back 543
// years.
func (h *MaintenanceHandler) FixDates(c *gin.Context) {
	n, err := h.svc.FixDates(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"updated": n})
}
