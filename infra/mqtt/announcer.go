// Package mqtt publishes run summaries to an MQTT broker using Eclipse
// Paho.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/induplan/pathopt/core/notify"
	"github.com/induplan/pathopt/infra/logger"
)

// pahoClient is the subset of the Paho client used by the announcer.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Announcer publishes run summaries to a single topic.
type Announcer struct {
	cli     pahoClient
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
	log     logger.Logger
}

// NewAnnouncer connects to the broker named by cfg.
func NewAnnouncer(cfg Config) (*Announcer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("mqtt-announcer")

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).
		SetClientID(fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString()[:8]))
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Announcer{
		cli:     c,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retain:  cfg.Retain,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		log:     log,
	}, nil
}

// PublishRunSummary marshals the summary and publishes it.
func (a *Announcer) PublishRunSummary(ctx context.Context, s notify.RunSummary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	token := a.cli.Publish(a.topic, a.qos, a.retain, payload)
	timer := time.NewTimer(a.timeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", a.topic, err)
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("publish %s: timeout after %s", a.topic, a.timeout)
	}
	a.log.Infof("published run %s to %s", s.RunID, a.topic)
	return nil
}

// Close gracefully disconnects from the broker.
func (a *Announcer) Close() error {
	if a.cli != nil && a.cli.IsConnected() {
		a.cli.Disconnect(250)
	}
	return nil
}
