package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cargo-tracker/internal/config"
	"cargo-tracker/internal/logger"
	pkgmqtt "cargo-tracker/pkg/mqtt"
)

// MQTTIngestionClient wires the broker's location topic into the processor.
type MQTTIngestionClient struct {
	cfg       *config.MQTTConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

// NewMQTTIngestionClient builds an MQTT subscriber for the location feed.
func NewMQTTIngestionClient(cfg *config.MQTTConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || !cfg.Enabled() {
		return nil, errors.New("mqtt ingestion is not configured")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	client := pkgmqtt.NewClient(&pkgmqtt.Config{
		Broker:        cfg.Broker,
		ClientID:      cfg.ClientID,
		Username:      cfg.Username,
		Password:      cfg.Password,
		CleanSession:  true,
		KeepAlive:     30,
		AutoReconnect: true,
	})

	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    client,
		processor: processor,
	}, nil
}

// Start connects and subscribes to the location topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.LocationTopic, byte(c.cfg.QoS), c.handleLocationMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.LocationTopic, err)
	}

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.LocationTopic); err != nil {
		logger.Warn("failed to unsubscribe from location topic", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleLocationMessage(topic string, payload []byte) {
	var report LocationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		c.processor.Metrics().Update(func(m *IngestMetrics) { m.ReportsDropped++ })
		logger.Warn("malformed location message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}
	c.processor.Enqueue(&report)
}
