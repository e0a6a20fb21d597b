package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plate-service/internal/http/middleware"
	"plate-service/internal/model"
	"plate-service/internal/repository"
	"plate-service/internal/service"
)

const maxImageBytes = 16 << 20

type Handler struct {
	recognitionService *service.RecognitionService
	log                zerolog.Logger
}

func NewHandler(recognitionService *service.RecognitionService, log zerolog.Logger) *Handler {
	return &Handler{
		recognitionService: recognitionService,
		log:                log,
	}
}

// Register mounts the API. authMiddleware may be nil, in which case the API
// is open.
func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api/v1")
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}

	api.POST("/recognize", h.recognizeImage)
	api.POST("/detections", h.evaluateDetections)
	api.GET("/reads", h.listReads)
}

func (h *Handler) recognizeImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("image file is required"))
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse("image is too large"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("failed to open image"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("failed to read image"))
		return
	}

	outcome, err := h.recognitionService.RecognizeImage(c.Request.Context(), data, h.source(c, "upload:"+file.Filename))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(outcome))
}

// evaluateDetections classifies detections produced by an external OCR
// engine. A missing or null "detections" field means no frame was captured.
func (h *Handler) evaluateDetections(c *gin.Context) {
	var req struct {
		Detections *[]model.Detection `json:"detections"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var set *model.DetectionSet
	if req.Detections != nil {
		set = &model.DetectionSet{Detections: *req.Detections}
	}

	outcome := h.recognitionService.Evaluate(c.Request.Context(), set, h.source(c, "api"))
	c.JSON(http.StatusOK, successResponse(outcome))
}

func (h *Handler) listReads(c *gin.Context) {
	filter := repository.PlateReadListFilter{}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := model.ParseOutcomeStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		filter.Status = &status
	}

	if raw := strings.TrimSpace(c.Query("plate")); raw != "" {
		plate := strings.ToUpper(raw)
		filter.Plate = &plate
	}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid limit"))
			return
		}
		filter.Limit = limit
	}

	reads, err := h.recognitionService.ListReads(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reads))
}

func (h *Handler) source(c *gin.Context, fallback string) string {
	if subject := middleware.Subject(c); subject != "" {
		return subject + "/" + fallback
	}
	return fallback
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data any) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
