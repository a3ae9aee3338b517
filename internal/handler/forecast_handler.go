package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	svc *service.ForecastService
}

func NewForecastHandler(svc *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// List GET /forecasts?weekStart: matches weekStart within [start, start+6d].
func (h *ForecastHandler) List(c *gin.Context) {
	forecasts, err := h.svc.List(c.Request.Context(), queryDate(c, "weekStart"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, forecasts)
}

// Create POST /forecasts
func (h *ForecastHandler) Create(c *gin.Context) {
	var input service.CreateForecastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	forecast, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, forecast)
}

// Get GET /forecasts/:id
func (h *ForecastHandler) Get(c *gin.Context) {
	forecast, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "forecast not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, forecast)
}

// Update PUT /forecasts/:id
func (h *ForecastHandler) Update(c *gin.Context) {
	var input service.UpdateForecastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	forecast, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "forecast not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, forecast)
}

// Delete DELETE /forecasts/:id
func (h *ForecastHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "forecast not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
