package attendance

import (
	"net/http"
	"strconv"
	"time"

	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// formPhoto mengambil berkas "photo" dari form multipart bila ada.
func formPhoto(c *gin.Context) (*FileUpload, func(), error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &FileUpload{Filename: fh.Filename, Content: f}, func() { f.Close() }, nil
}

func (h *Handler) PreCheck(c *gin.Context) {
	userID := c.GetString("user_id")

	var req PreCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.logger.Warn("http pre-check validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.PreCheck(c.Request.Context(), userID, c.ClientIP(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckIn(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CheckInRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http check-in validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	photo, closePhoto, err := formPhoto(c)
	if err != nil {
		h.logger.Warn("http check-in photo read failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Foto tidak bisa dibaca", err.Error())
		return
	}
	defer closePhoto()
	req.Photo = photo

	resp, err := h.service.CheckIn(c.Request.Context(), userID, c.ClientIP(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CheckOutRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http check-out validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	photo, closePhoto, err := formPhoto(c)
	if err != nil {
		h.logger.Warn("http check-out photo read failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Foto tidak bisa dibaca", err.Error())
		return
	}
	defer closePhoto()
	req.Photo = photo

	resp, err := h.service.CheckOut(c.Request.Context(), userID, c.ClientIP(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.GetToday(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	actorID := c.GetString("user_id")
	role := c.GetString("role")
	canReadAll := role == "supervisor" || role == "admin"

	f := ListFilter{
		WorkType: c.Query("work_type"),
		Status:   c.Query("status"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date tidak valid", nil)
			return
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date tidak valid", nil)
			return
		}
		f.EndDate = &t
	}
	f.Page = queryInt(c, "page", 1)
	f.PageSize = queryInt(c, "page_size", 10)

	resp, total, err := h.service.GetAll(c.Request.Context(), actorID, canReadAll, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, f.Page, f.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Approve(c *gin.Context) {
	reviewerID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Approve(c.Request.Context(), reviewerID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	reviewerID := c.GetString("user_id")
	id := c.Param("id")

	var req RejectAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject attendance validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), reviewerID, id, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
