package handler

import (
	"errors"

	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// List GET /profile
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, profiles)
}

// Create POST /profile: once per external identity; flags the identity
// record and merges historical rep names.
func (h *ProfileHandler) Create(c *gin.Context) {
	var input service.CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ValidationFailed(c, err)
		return
	}
	if input.ClerkID == "" {
		input.ClerkID = GetUserID(c)
	}

	profile, err := h.svc.Create(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, service.ErrProfileExists) {
			Conflict(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Created(c, profile)
}

// Check GET /profile/check: reads the registered flag off the caller's
// identity record.
func (h *ProfileHandler) Check(c *gin.Context) {
	registered, err := h.svc.Registered(c.Request.Context(), GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"registered": registered})
}
