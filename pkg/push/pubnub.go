package push

import (
	"context"
	"fmt"

	pubnub "github.com/pubnub/go"

	"github.com/noah-isme/event-planner-api/pkg/config"
)

// Message is the payload delivered to a staff channel.
type Message struct {
	Type  string                 `json:"type"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Publisher delivers realtime messages to a single staff member.
type Publisher interface {
	Publish(ctx context.Context, staffID string, msg Message) error
}

// ChannelFor returns the PubNub channel a staff member subscribes to.
func ChannelFor(staffID string) string {
	return fmt.Sprintf("staff-%s", staffID)
}

// sendFunc performs one publish and reports the HTTP status of the PubNub call.
type sendFunc func(channel string, message interface{}) (int, error)

// PubNubPublisher publishes over a PubNub client.
type PubNubPublisher struct {
	send sendFunc
}

// NewPubNub builds a publisher from configuration. It returns nil when push is not configured.
func NewPubNub(cfg config.PushConfig) *PubNubPublisher {
	if !cfg.Enabled() {
		return nil
	}
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PublishKey
	pnConfig.SubscribeKey = cfg.SubscribeKey
	if cfg.UserID != "" {
		pnConfig.UUID = cfg.UserID
	}
	pn := pubnub.NewPubNub(pnConfig)

	return &PubNubPublisher{send: func(channel string, message interface{}) (int, error) {
		_, status, err := pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return status.StatusCode, err
	}}
}

// Publish sends msg to the staff member's channel.
func (p *PubNubPublisher) Publish(ctx context.Context, staffID string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	channel := ChannelFor(staffID)
	code, err := p.send(channel, msg)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	if code >= 400 {
		return fmt.Errorf("publish to %s: status %d", channel, code)
	}
	return nil
}
