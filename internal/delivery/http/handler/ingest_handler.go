package handler

import (
	"net/http"
	"time"

	"device-tracker/internal/ingestion"
	"device-tracker/internal/middleware"
	"device-tracker/internal/usecase/device"
	"device-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type IngestHandler struct {
	processor *ingestion.Processor
}

func NewIngestHandler(processor *ingestion.Processor) *IngestHandler {
	return &IngestHandler{processor: processor}
}

// RegisterDeviceRoutes expects a group guarded by AccessCodeMiddleware.
func (h *IngestHandler) RegisterDeviceRoutes(router *gin.RouterGroup) {
	router.POST("/ingest/locations", h.IngestLocation)
}

func (h *IngestHandler) RegisterMetricsRoutes(router *gin.RouterGroup) {
	router.GET("/ingest/metrics", h.GetMetrics)
}

type ingestLocationRequest struct {
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	Accuracy   float64    `json:"accuracy"`
	ReportedAt *time.Time `json:"timestamp"`
	DeviceName *string    `json:"device_name"`
}

func (h *IngestHandler) IngestLocation(c *gin.Context) {
	var req ingestLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	msg := &ingestion.LocationMessage{
		AccessCode: c.GetString("accessCode"),
		Latitude:   *req.Lat,
		Longitude:  *req.Lng,
		Accuracy:   req.Accuracy,
		ReportedAt: req.ReportedAt,
		DeviceName: req.DeviceName,
	}

	rec, err := h.processor.Ingest(c.Request.Context(), msg)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Location recorded", device.ToLocationResponse(rec))
}

func (h *IngestHandler) GetMetrics(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Ingestion metrics", h.processor.GetMetrics())
}
