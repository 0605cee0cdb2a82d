package payroll

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActor(c *gin.Context) contextutil.Actor {
	if actor, ok := contextutil.GetActor(c.Request.Context()); ok {
		return actor
	}
	return contextutil.Actor{
		UserID:     c.GetString("user_id"),
		EmployeeID: c.GetString("employee_id"),
		Email:      c.GetString("email"),
		Role:       c.GetString("role"),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMonthlySlip(c *gin.Context) {
	resp, err := h.service.GetMonthlySlip(
		c.Request.Context(),
		getActor(c),
		c.Param("id"),
		c.Query("month"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateDetailedSlip(c *gin.Context) {
	var req GenerateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http generate payslip validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.GenerateDetailedSlip(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
