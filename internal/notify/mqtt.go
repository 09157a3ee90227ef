package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"blynk_bridge/internal/config"
	"blynk_bridge/internal/logger"
	"blynk_bridge/internal/models"

	mqttLib "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // ms
	keepAlive         = 60 * time.Second
)

var errNotConnected = errors.New("mqtt client not connected")

// Publisher forwards command events to an MQTT broker as JSON, one topic per
// event type: {topic}/{type}.
type Publisher struct {
	cfg    config.MQTTConfig
	client mqttLib.Client
	log    *logger.Logger
}

// NewPublisher prepares a publisher; Start connects it.
func NewPublisher(cfg config.MQTTConfig, log *logger.Logger) *Publisher {
	if cfg.ClientID == "" {
		cfg.ClientID = "blynk-bridge-" + uuid.NewString()[:8]
	}
	p := &Publisher{cfg: cfg, log: logger.OrNop(log)}
	p.client = mqttLib.NewClient(p.clientOptions())
	return p
}

func newPublisherWithClient(cfg config.MQTTConfig, client mqttLib.Client, log *logger.Logger) *Publisher {
	return &Publisher{cfg: cfg, client: client, log: logger.OrNop(log)}
}

func (p *Publisher) clientOptions() *mqttLib.ClientOptions {
	opts := mqttLib.NewClientOptions()
	opts.AddBroker(p.cfg.Broker)
	opts.SetClientID(p.cfg.ClientID)
	opts.SetKeepAlive(keepAlive)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(true)
	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password)
	}
	opts.SetOnConnectHandler(func(mqttLib.Client) {
		p.log.Infow("mqtt_connected", "broker", p.cfg.Broker, "client_id", p.cfg.ClientID)
	})
	opts.SetConnectionLostHandler(func(_ mqttLib.Client, err error) {
		p.log.Warnw("mqtt_connection_lost", "broker", p.cfg.Broker, "err", err)
	})
	return opts
}

// Start connects to the broker.
func (p *Publisher) Start() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connecting to mqtt broker %s: timeout", p.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connecting to mqtt broker %s: %w", p.cfg.Broker, err)
	}
	return nil
}

// Stop disconnects from the broker.
func (p *Publisher) Stop() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesce)
		p.log.Infow("mqtt_disconnected", "broker", p.cfg.Broker)
	}
}

// Topic returns the topic an event of the given type is published to.
func (p *Publisher) Topic(eventType string) string {
	return strings.TrimSuffix(p.cfg.Topic, "/") + "/" + strings.ToLower(eventType)
}

// Record publishes e. It satisfies service.EventSink.
func (p *Publisher) Record(ctx context.Context, e models.CommandEvent) error {
	if p.client == nil || !p.client.IsConnected() {
		return errNotConnected
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal command event: %w", err)
	}

	topic := p.Topic(e.Type)
	token := p.client.Publish(topic, p.cfg.QoS, false, payload)

	wait := publishTimeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d < wait {
			wait = d
		}
	}
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
