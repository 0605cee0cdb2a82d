package reimbursement

import (
	"io"
	"net/http"
	"strconv"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBillSize = 5 << 20 // 5MB

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("reimbursement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.handler")
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
	h.logger.Warn("reimbursement request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create menerima multipart form: field teks + file "bill" opsional.
func (h *Handler) Create(c *gin.Context) {
	var req CreateReimbursementRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http create reimbursement validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	var bill *BillUpload
	if fileHeader, err := c.FormFile("bill"); err == nil {
		if fileHeader.Size > maxBillSize {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Ukuran bill maksimal 5MB", nil)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bill tidak bisa dibaca", nil)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Bill tidak bisa dibaca", nil)
			return
		}

		bill = &BillUpload{
			Data:        data,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	resp, err := h.service.Create(c.Request.Context(), getActor(c), req, bill)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), getActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject reimbursement validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), getActor(c), c.Param("id"), req.Remarks)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Clear(c *gin.Context) {
	var req ClearReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		h.logger.Warn("http clear reimbursement validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Clear(c.Request.Context(), getActor(c), c.Param("id"), req.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
