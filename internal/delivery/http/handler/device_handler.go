package handler

import (
	"context"
	"net/http"
	"strconv"

	"device-tracker/internal/usecase/device"
	"device-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	registry     *device.Registry
	orchestrator *device.Orchestrator
}

func NewDeviceHandler(registry *device.Registry, orchestrator *device.Orchestrator) *DeviceHandler {
	return &DeviceHandler{registry: registry, orchestrator: orchestrator}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.POST("", h.RegisterDevice)
		devices.GET("/:id/location", h.LatestLocation)
		devices.DELETE("/:id", h.DeleteDevice)
	}
}

func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	var req device.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.registry.Register(c.Request.Context(), owner, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Device added successfully", result)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	devices, err := h.registry.List(c.Request.Context(), owner)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", devices)
}

func (h *DeviceHandler) LatestLocation(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	rec, err := h.registry.Latest(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", device.ToLocationResponse(rec))
}

// DeleteDevice runs the cascade delete. The caller confirms with ?confirm=true;
// without it the delete is declined and nothing is touched.
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	owner, ok := currentUser(c)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	outcome, err := h.orchestrator.Delete(c.Request.Context(), owner, c.Param("id"), answer(confirmed), nil)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if outcome.Declined {
		utils.SuccessResponse(c, http.StatusOK, "Device deletion not confirmed", outcome)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device deleted successfully", outcome)
}

// answer is a Confirmer with a fixed reply.
type answer bool

func (a answer) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
