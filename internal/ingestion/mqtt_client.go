package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"device-tracker/internal/logger"
	pkgmqtt "device-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

// MQTTIngestionConfig describes the location topic and MQTT connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig  *pkgmqtt.Config
	LocationTopic string
	QoS           byte
}

// MQTTIngestionClient wires MQTT messages into the ingestion processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor
	log       *zap.Logger

	mu      sync.Mutex
	started bool
}

func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.LocationTopic == "" {
		return nil, errors.New("no MQTT location topic configured for ingestion")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
		log:       logger.Named("mqtt_ingestion"),
	}, nil
}

// Start establishes the MQTT connection and subscribes to the location topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return err
	}

	if err := c.client.Subscribe(c.cfg.LocationTopic, c.cfg.QoS, c.handleLocationMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.LocationTopic, err)
	}

	c.log.Info("Listening for MQTT location messages", zap.String("topic", c.cfg.LocationTopic))
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
		c.log.Warn("Failed to unsubscribe from MQTT topic", zap.Error(err))
	}
	c.client.Disconnect()
	c.started = false
}

// handleLocationMessage decodes a report and queues it. The topic segment
// stands in for the access code when the payload omits it.
func (c *MQTTIngestionClient) handleLocationMessage(topic string, payload []byte) {
	msg, err := ParseLocationMessage(payload)
	if err != nil {
		c.log.Warn("Invalid location payload", zap.String("topic", topic), zap.Error(err))
		return
	}
	if msg.AccessCode == "" {
		msg.AccessCode = accessCodeFromTopic(topic)
	}

	if err := c.processor.Enqueue(msg); err != nil {
		c.log.Warn("Location message rejected",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

// Connected reports whether the broker connection is currently up.
func (c *MQTTIngestionClient) Connected() bool {
	return c.client.IsConnected()
}
