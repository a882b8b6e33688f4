package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-tracker/internal/config"
	"cargo-tracker/internal/ingestion"
	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/store"
)

// stubGateway satisfies store.Gateway; router tests never reach the remote API.
type stubGateway struct{}

func (stubGateway) List(ctx context.Context) ([]model.Shipment, error) { return nil, nil }
func (stubGateway) GetByID(ctx context.Context, id string) (*model.Shipment, error) {
	return &model.Shipment{ID: id}, nil
}
func (stubGateway) Create(ctx context.Context, req *model.CreateShipmentRequest) (*model.Shipment, error) {
	return &model.Shipment{}, nil
}
func (stubGateway) Update(ctx context.Context, id string, req *model.UpdateShipmentRequest) (*model.Shipment, error) {
	return &model.Shipment{ID: id}, nil
}
func (stubGateway) UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error) {
	return &model.Shipment{ID: id}, nil
}
func (stubGateway) GetETA(ctx context.Context, id string) (model.ETA, error) { return nil, nil }
func (stubGateway) Delete(ctx context.Context, id string) error              { return nil }
func (stubGateway) Lookup(ctx context.Context, ref string) (*model.Shipment, error) {
	return &model.Shipment{ID: ref}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RateLimit: config.RateLimitConfig{GeneralRPS: 100, GeneralBurst: 100},
	}
}

func TestHealthWithoutIngestion(t *testing.T) {
	st := store.New(stubGateway{})
	router := SetupRoutes(testConfig(), nil, st, store.NewTracker(st, 0), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotContains(t, body, "ingestion")
}

func TestHealthReportsIngestionCounters(t *testing.T) {
	st := store.New(stubGateway{})
	processor := ingestion.NewProcessor(st, 1, 8)
	processor.Metrics().Update(func(m *ingestion.IngestMetrics) {
		m.ReportsReceived = 5
		m.ReportsForwarded = 3
		m.ReportsDropped = 2
	})

	router := SetupRoutes(testConfig(), nil, st, store.NewTracker(st, 0), processor)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status    string `json:"status"`
		Ingestion struct {
			ReportsReceived  int64 `json:"reportsReceived"`
			ReportsForwarded int64 `json:"reportsForwarded"`
			ReportsDropped   int64 `json:"reportsDropped"`
			ReportsFailed    int64 `json:"reportsFailed"`
		} `json:"ingestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, int64(5), body.Ingestion.ReportsReceived)
	assert.Equal(t, int64(3), body.Ingestion.ReportsForwarded)
	assert.Equal(t, int64(2), body.Ingestion.ReportsDropped)
	assert.Equal(t, int64(0), body.Ingestion.ReportsFailed)
}

func TestManagementRoutesAbsentWithoutDatabase(t *testing.T) {
	st := store.New(stubGateway{})
	router := SetupRoutes(testConfig(), nil, st, store.NewTracker(st, 0), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
