package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handlers collects every route handler behind one handle.
type Handlers struct {
	Store       *StoreHandler
	Visit       *VisitHandler
	Plan        *PlanHandler
	Forecast    *ForecastHandler
	Product     *ProductHandler
	Purchase    *PurchaseHandler
	Issue       *IssueHandler
	Profile     *ProfileHandler
	Maintenance *MaintenanceHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Store:       NewStoreHandler(svc.Store),
		Visit:       NewVisitHandler(svc.Visit),
		Plan:        NewPlanHandler(svc.Plan),
		Forecast:    NewForecastHandler(svc.Forecast),
		Product:     NewProductHandler(svc.Product),
		Purchase:    NewPurchaseHandler(svc.Purchase),
		Issue:       NewIssueHandler(svc.Issue),
		Profile:     NewProfileHandler(svc.Profile),
		Maintenance: NewMaintenanceHandler(svc.Maintenance),
	}
}

// Response is the envelope every endpoint replies with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// FieldError is one failed validation constraint on a direct create/update.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// ValidationFailed renders a binding error as a structured field list
// when the validator produced one, or a generic 400 otherwise.
func ValidationFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Path:    strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: "failed on " + fe.Tag(),
			})
		}
		c.JSON(400, Response{
			Code:    40000,
			Message: "validation failed",
			Errors:  fields,
		})
		return
	}
	BadRequest(c, "Invalid request body: "+err.Error())
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID reads the authenticated caller's id off the context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// queryDate parses an optional date query parameter. Both the bare date
// form and RFC3339 are accepted.
func queryDate(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
