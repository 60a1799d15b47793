package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

const (
	qos            = 1
	publishTimeout = 2 * time.Second
)

// Topic is where the acknowledgments of one session are published.
func Topic(sessionID string) string {
	return fmt.Sprintf("darshan/sessions/%s/toasts", sessionID)
}

// ToastMessage is the payload published for every acknowledgment.
type ToastMessage struct {
	SessionID string      `json:"session_id"`
	Toast     model.Toast `json:"toast"`
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Notifier mirrors session acknowledgments to an MQTT broker so other
// clients of the same session can show them.
type Notifier struct {
	client mqtt.Client
}

var _ session.Notifier = (*Notifier)(nil)

// Connect dials the broker. The client reconnects on its own afterwards.
func Connect(brokerURL, clientID string) (*Notifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Notifier{client: client}, nil
}

// NewNotifier wraps an already configured client.
func NewNotifier(client mqtt.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Notify(ctx context.Context, sessionID string, t model.Toast) error {
	payload, err := json.Marshal(ToastMessage{SessionID: sessionID, Toast: t})
	if err != nil {
		return fmt.Errorf("encode toast: %w", err)
	}

	token := n.client.Publish(Topic(sessionID), qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", Topic(sessionID))
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", Topic(sessionID), err)
	}
	return nil
}

func (n *Notifier) Close() {
	n.client.Disconnect(250)
	log.Info().Msg("MQTT client disconnected")
}
