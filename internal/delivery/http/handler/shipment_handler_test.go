package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-tracker/internal/gateway"
	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/store"
	"cargo-tracker/pkg/utils"
)

// scriptedGateway implements store.Gateway with per-test behavior.
type scriptedGateway struct {
	mu        sync.Mutex
	shipments []model.Shipment
	failWith  error
	getCalls  int
}

func (g *scriptedGateway) List(ctx context.Context) ([]model.Shipment, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return g.shipments, nil
}

func (g *scriptedGateway) GetByID(ctx context.Context, id string) (*model.Shipment, error) {
	g.mu.Lock()
	g.getCalls++
	g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	for i := range g.shipments {
		if g.shipments[i].ID == id {
			return &g.shipments[i], nil
		}
	}
	return nil, &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Shipment not found"}
}

func (g *scriptedGateway) fetchCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.getCalls
}

func (g *scriptedGateway) Create(ctx context.Context, req *model.CreateShipmentRequest) (*model.Shipment, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &model.Shipment{ID: "507f1f77bcf86cd799439011", ContainerID: req.ContainerID, Status: req.Status}, nil
}

func (g *scriptedGateway) Update(ctx context.Context, id string, req *model.UpdateShipmentRequest) (*model.Shipment, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &model.Shipment{ID: id}, nil
}

func (g *scriptedGateway) UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return &model.Shipment{ID: id, CurrentLocation: model.Location{Name: req.Name, Coordinates: req.Coordinates}}, nil
}

func (g *scriptedGateway) GetETA(ctx context.Context, id string) (model.ETA, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return model.ETA{"remainingKm": 42.0}, nil
}

func (g *scriptedGateway) Delete(ctx context.Context, id string) error {
	return g.failWith
}

func (g *scriptedGateway) Lookup(ctx context.Context, ref string) (*model.Shipment, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	for i := range g.shipments {
		if g.shipments[i].ContainerID == ref || g.shipments[i].ID == ref {
			return &g.shipments[i], nil
		}
	}
	return nil, &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Shipment not found"}
}

type silentNotifier struct{}

func (silentNotifier) Success(string) {}
func (silentNotifier) Error(string)   {}

func newTestRouter(gw *scriptedGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	st := store.New(gw, store.WithNotifier(silentNotifier{}))
	NewShipmentHandler(st, nil).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestListShipmentsEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedGateway{
		shipments: []model.Shipment{{ID: "a1", ContainerID: "CONT-1", Status: model.StatusInTransit}},
	})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/shipments", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestListShipmentsRelaysUpstreamStatus(t *testing.T) {
	router := newTestRouter(&scriptedGateway{
		failWith: &gateway.APIError{StatusCode: http.StatusServiceUnavailable, Message: "maintenance window"},
	})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/shipments", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "maintenance window", resp.Message)
}

func TestGetShipmentNotFound(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/shipments/507f1f77bcf86cd799439011", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shipment not found", resp.Message)
}

func TestTrackShipmentByContainer(t *testing.T) {
	router := newTestRouter(&scriptedGateway{
		shipments: []model.Shipment{{ID: "507f1f77bcf86cd799439011", ContainerID: "CONT-1234", Status: model.StatusInTransit}},
	})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/track/CONT-1234", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestTrackShipmentStartsPollingInTransit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := &scriptedGateway{
		shipments: []model.Shipment{{ID: "507f1f77bcf86cd799439011", ContainerID: "CONT-1234", Status: model.StatusInTransit}},
	}
	st := store.New(gw, store.WithNotifier(silentNotifier{}))
	tracker := store.NewTracker(st, 10*time.Millisecond)
	defer tracker.Stop()

	router := gin.New()
	NewShipmentHandler(st, tracker).RegisterRoutes(router.Group("/api/v1"))

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/track/CONT-1234", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		return gw.fetchCount() >= 2
	}, 2*time.Second, 5*time.Millisecond, "a tracked in-transit shipment must be re-fetched in the background")
}

func TestTrackShipmentNoPollingWhenDelivered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := &scriptedGateway{
		shipments: []model.Shipment{{ID: "507f1f77bcf86cd799439011", ContainerID: "CONT-1234", Status: model.StatusDelivered}},
	}
	st := store.New(gw, store.WithNotifier(silentNotifier{}))
	tracker := store.NewTracker(st, 10*time.Millisecond)
	defer tracker.Stop()

	router := gin.New()
	NewShipmentHandler(st, tracker).RegisterRoutes(router.Group("/api/v1"))

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/track/CONT-1234", nil)
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, gw.fetchCount(), "a delivered shipment is never polled")
}

func TestCreateShipmentEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	lat, lng := 51.9225, 4.47917
	body := CreateShipmentInput{
		ContainerID: "CONT-1234",
		Cargo:       model.Cargo{Type: "Electronics", Weight: 1200, Unit: model.UnitKilograms},
		CurrentLocation: LocationInput{
			Name:        "Port of Rotterdam",
			Coordinates: CoordinateInput{Latitude: &lat, Longitude: &lng},
		},
	}

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/shipments", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Shipment created successfully", resp.Message)
}

func TestCreateShipmentValidation(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	lng := 4.47917
	body := CreateShipmentInput{
		CurrentLocation: LocationInput{
			Coordinates: CoordinateInput{Longitude: &lng}, // latitude omitted entirely
		},
	}

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/shipments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", resp.Message)

	errs, ok := resp.Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Container ID is required", errs["containerId"])
	assert.Equal(t, "Location name is required", errs["currentLocation.name"])
	assert.Equal(t, "Latitude is required", errs["currentLocation.latitude"])
}

func TestCreateShipmentZeroLatitudeAccepted(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	lat, lng := 0.0, -78.5
	body := CreateShipmentInput{
		ContainerID: "CONT-1234",
		CurrentLocation: LocationInput{
			Name:        "Equator crossing",
			Coordinates: CoordinateInput{Latitude: &lat, Longitude: &lng},
		},
	}

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/shipments", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateLocationEndpointValidation(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	lat, lng := 91.0, 4.47917
	body := UpdateLocationInput{
		Name:        "Nowhere",
		Coordinates: CoordinateInput{Latitude: &lat, Longitude: &lng},
	}

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/shipments/a1/location", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errs, ok := resp.Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Invalid coordinates", errs["latitude"])
}

func TestUpdateLocationEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	lat, lng := 30.4278, 32.3439
	body := UpdateLocationInput{
		Name:        "Suez Canal",
		Coordinates: CoordinateInput{Latitude: &lat, Longitude: &lng},
	}

	w, resp := doJSON(t, router, http.MethodPost, "/api/v1/shipments/a1/location", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shipment location updated", resp.Message)
}

func TestDeleteShipmentEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	w, resp := doJSON(t, router, http.MethodDelete, "/api/v1/shipments/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shipment deleted successfully", resp.Message)
}

func TestGetETAEndpoint(t *testing.T) {
	router := newTestRouter(&scriptedGateway{})

	w, resp := doJSON(t, router, http.MethodGet, "/api/v1/shipments/a1/eta", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 42.0, data["remainingKm"])
}
