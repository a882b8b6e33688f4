package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargo-tracker/internal/fleet"
	appErrors "cargo-tracker/pkg/errors"
	"cargo-tracker/pkg/utils"
)

// FleetHandler exposes vehicle reference-data management.
type FleetHandler struct {
	service *fleet.Service
}

func NewFleetHandler(service *fleet.Service) *FleetHandler {
	return &FleetHandler{service: service}
}

func (h *FleetHandler) RegisterRoutes(router *gin.RouterGroup, protected *gin.RouterGroup) {
	router.GET("/fleet", h.ListVehicles)
	router.GET("/fleet/:id", h.GetVehicle)
	protected.POST("/fleet", h.CreateVehicle)
	protected.PUT("/fleet/:id", h.UpdateVehicle)
	protected.DELETE("/fleet/:id", h.DeleteVehicle)
}

func (h *FleetHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list vehicles")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", vehicles)
}

func (h *FleetHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", vehicle)
}

func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var vehicle fleet.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &vehicle)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Vehicle added successfully", created)
}

func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var vehicle fleet.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &vehicle)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", updated)
}

func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Vehicle removed successfully", nil)
}

func (h *FleetHandler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, appErrors.ErrVehicleNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Vehicle not found")
		return
	}
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Error())
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
