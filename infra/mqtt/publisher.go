package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/chargewise/chargewise/infra/logger"
	"github.com/chargewise/chargewise/internal/eventbus"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "chargewise-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = "chargewise/results"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// newMQTTClient builds the underlying Paho client. Overridable in tests.
var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// ResultPublisher broadcasts scoring results to an MQTT topic so downstream
// dashboards can follow recommendations live.
type ResultPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewResultPublisher connects to the broker and returns the publisher.
func NewResultPublisher(cfg Config) (*ResultPublisher, error) {
	log := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &ResultPublisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// Publish sends the result event as JSON.
func (p *ResultPublisher) Publish(ev eventbus.ResultEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish result: %w", token.Error())
	}
	return nil
}

// Run consumes the bus until the channel closes, publishing every event.
func (p *ResultPublisher) Run(sub <-chan eventbus.ResultEvent) {
	for ev := range sub {
		if err := p.Publish(ev); err != nil {
			p.log.Errorf("publish %s: %v", ev.RequestID, err)
		}
	}
}

// Close disconnects from the broker.
func (p *ResultPublisher) Close() {
	p.cli.Disconnect(250)
}
