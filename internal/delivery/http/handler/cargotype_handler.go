package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cargo-tracker/internal/cargotype"
	appErrors "cargo-tracker/pkg/errors"
	"cargo-tracker/pkg/utils"
)

// CargoTypeHandler exposes cargo type catalog management.
type CargoTypeHandler struct {
	service *cargotype.Service
}

func NewCargoTypeHandler(service *cargotype.Service) *CargoTypeHandler {
	return &CargoTypeHandler{service: service}
}

func (h *CargoTypeHandler) RegisterRoutes(router *gin.RouterGroup, protected *gin.RouterGroup) {
	router.GET("/cargo-types", h.ListCargoTypes)
	router.GET("/cargo-types/:id", h.GetCargoType)
	protected.POST("/cargo-types", h.CreateCargoType)
	protected.PUT("/cargo-types/:id", h.UpdateCargoType)
	protected.DELETE("/cargo-types/:id", h.DeleteCargoType)
}

func (h *CargoTypeHandler) ListCargoTypes(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list cargo types")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", types)
}

func (h *CargoTypeHandler) GetCargoType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid cargo type ID")
		return
	}

	ct, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ct)
}

func (h *CargoTypeHandler) CreateCargoType(c *gin.Context) {
	var ct cargotype.CargoType
	if err := c.ShouldBindJSON(&ct); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &ct)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Cargo type created successfully", created)
}

func (h *CargoTypeHandler) UpdateCargoType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid cargo type ID")
		return
	}

	var ct cargotype.CargoType
	if err := c.ShouldBindJSON(&ct); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &ct)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cargo type updated successfully", updated)
}

func (h *CargoTypeHandler) DeleteCargoType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid cargo type ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Cargo type deleted successfully", nil)
}

func (h *CargoTypeHandler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, appErrors.ErrCargoTypeNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Cargo type not found")
		return
	}
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Error())
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
