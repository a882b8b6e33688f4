package ingestion

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cargo-tracker/internal/logger"
	"cargo-tracker/internal/shipment/model"
	"cargo-tracker/internal/shipment/validator"
)

// LocationUpdater is where validated reports go; in production this is the
// shipment store's UpdateLocation operation.
type LocationUpdater interface {
	UpdateLocation(ctx context.Context, id string, req *model.UpdateLocationRequest) (*model.Shipment, error)
}

// Processor drains location reports through validation and into the updater
// with a pool of workers. Reports that fail validation are dropped and
// counted; they never reach the network.
type Processor struct {
	updater LocationUpdater

	reports chan *LocationReport

	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	metrics *MetricsTracker
}

// NewProcessor creates a processor with the given worker pool and buffer sizes.
func NewProcessor(updater LocationUpdater, workerCount, bufferSize int) *Processor {
	if workerCount <= 0 {
		workerCount = 2
	}
	if bufferSize <= 0 {
		bufferSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		updater:     updater,
		reports:     make(chan *LocationReport, bufferSize),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		metrics:     NewMetricsTracker(),
	}
}

// Start launches the worker pool.
func (p *Processor) Start() {
	logger.Info("Starting location ingestion processor",
		zap.Int("workers", p.workerCount),
		zap.Int("buffer", cap(p.reports)),
	)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop drains outstanding reports and waits for the workers to exit.
func (p *Processor) Stop() {
	p.cancel()
	close(p.reports)
	p.wg.Wait()
	logger.Info("Location ingestion processor stopped")
}

// Enqueue hands a report to the worker pool. When the buffer is full the
// report is dropped rather than blocking the MQTT callback.
func (p *Processor) Enqueue(report *LocationReport) {
	p.metrics.Update(func(m *IngestMetrics) { m.ReportsReceived++ })

	select {
	case p.reports <- report:
	default:
		p.metrics.Update(func(m *IngestMetrics) { m.ReportsDropped++ })
		logger.Warn("location report buffer full, dropping report",
			zap.String("shipment_id", report.ShipmentID),
		)
	}
}

// Metrics exposes the tracker for health endpoints and tests.
func (p *Processor) Metrics() *MetricsTracker {
	return p.metrics
}

func (p *Processor) worker() {
	defer p.wg.Done()
	for report := range p.reports {
		p.handle(report)
	}
}

func (p *Processor) handle(report *LocationReport) {
	if report == nil {
		return
	}
	if strings.TrimSpace(report.ShipmentID) == "" {
		p.drop(report, "missing shipment id")
		return
	}
	if errs := validator.ValidateCoordinates(report.Latitude, report.Longitude); len(errs) > 0 {
		p.drop(report, errs.Error())
		return
	}
	if strings.TrimSpace(report.Name) == "" {
		p.drop(report, validator.MsgNameRequired)
		return
	}

	req := &model.UpdateLocationRequest{
		Name: report.Name,
		Coordinates: model.Coordinate{
			Latitude:  *report.Latitude,
			Longitude: *report.Longitude,
		},
	}
	if _, err := p.updater.UpdateLocation(p.ctx, report.ShipmentID, req); err != nil {
		p.metrics.Update(func(m *IngestMetrics) { m.ReportsFailed++ })
		logger.Warn("failed to forward location report",
			zap.String("shipment_id", report.ShipmentID),
			zap.Error(err),
		)
		return
	}

	p.metrics.Update(func(m *IngestMetrics) {
		m.ReportsForwarded++
		m.LastForwardedAt = report.Timestamp
	})
}

func (p *Processor) drop(report *LocationReport, reason string) {
	p.metrics.Update(func(m *IngestMetrics) { m.ReportsDropped++ })
	logger.Debug("dropping invalid location report",
		zap.String("shipment_id", report.ShipmentID),
		zap.String("reason", reason),
	)
}
