package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-tracker/internal/gateway"
	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/shipment/validator"
	"cargo-tracker/internal/store"
	"cargo-tracker/pkg/utils"
)

// ShipmentHandler exposes the dashboard's shipment operations over HTTP,
// backed by the store. When a tracker is present, a successful tracking
// lookup of an in-transit shipment starts the background refresh poll.
type ShipmentHandler struct {
	store   *store.Store
	tracker *store.Tracker
}

func NewShipmentHandler(s *store.Store, tracker *store.Tracker) *ShipmentHandler {
	return &ShipmentHandler{store: s, tracker: tracker}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.GET("", h.ListShipments)
		shipments.POST("", h.CreateShipment)
		shipments.GET("/:id", h.GetShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.POST("/:id/location", h.UpdateLocation)
		shipments.GET("/:id/eta", h.GetETA)
	}
	router.GET("/track/:ref", h.TrackShipment)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	if err := h.store.List(c.Request.Context()); err != nil {
		h.remoteError(c, err, "Failed to fetch shipments")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", h.store.Shipments())
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipment, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.remoteError(c, err, "Failed to fetch shipment")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", shipment)
}

func (h *ShipmentHandler) TrackShipment(c *gin.Context) {
	shipment, err := h.store.Track(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.remoteError(c, err, "Shipment not found. Please check the tracking ID and try again.")
		return
	}
	if h.tracker != nil && shipment.Status == model.StatusInTransit {
		h.tracker.Watch(shipment.ID)
	}
	utils.SuccessResponse(c, http.StatusOK, "", shipment)
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var in CreateShipmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := in.Validate(); errs != nil {
		utils.ValidationErrorResponse(c, http.StatusBadRequest, errs)
		return
	}

	created, err := h.store.Create(c.Request.Context(), in.ToRequest())
	if err != nil {
		var fieldErrs validator.FieldErrors
		if errors.As(err, &fieldErrs) {
			utils.ValidationErrorResponse(c, http.StatusBadRequest, fieldErrs)
			return
		}
		h.remoteError(c, err, "Failed to create shipment")
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", created)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	var req model.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentLocation != nil {
		if errs := validator.ValidateCoordinate(req.CurrentLocation.Coordinates); len(errs) > 0 {
			utils.ValidationErrorResponse(c, http.StatusBadRequest, errs)
			return
		}
	}
	for _, stop := range req.Route {
		if errs := validator.ValidateCoordinate(stop.Coordinates); len(errs) > 0 {
			utils.ValidationErrorResponse(c, http.StatusBadRequest, errs)
			return
		}
	}

	updated, err := h.store.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.remoteError(c, err, "Failed to update shipment")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Shipment updated successfully", updated)
}

func (h *ShipmentHandler) UpdateLocation(c *gin.Context) {
	var in UpdateLocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := in.Validate(); errs != nil {
		utils.ValidationErrorResponse(c, http.StatusBadRequest, errs)
		return
	}

	updated, err := h.store.UpdateLocation(c.Request.Context(), c.Param("id"), in.ToRequest())
	if err != nil {
		var fieldErrs validator.FieldErrors
		if errors.As(err, &fieldErrs) {
			utils.ValidationErrorResponse(c, http.StatusBadRequest, fieldErrs)
			return
		}
		h.remoteError(c, err, "Failed to update location")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Shipment location updated", updated)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.remoteError(c, err, "Failed to delete shipment")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}

func (h *ShipmentHandler) GetETA(c *gin.Context) {
	eta, err := h.store.FetchETA(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.remoteError(c, err, "Failed to fetch ETA")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", eta)
}

// remoteError relays a gateway failure with its upstream status where known;
// transport-level failures surface as 502.
func (h *ShipmentHandler) remoteError(c *gin.Context, err error, fallback string) {
	utils.ErrorResponse(c, gateway.StatusCode(err), gateway.Message(err, fallback))
}
