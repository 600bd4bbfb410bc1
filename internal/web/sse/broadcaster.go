package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/codenames/internal/api/response"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/game"
)

// Broadcaster publishes engine events to the hub as JSON SSE messages.
// The SSE event name is the engine event type.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

var _ game.EventSink = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish renders the event and queues it on the hub. It never blocks.
func (b *Broadcaster) Publish(event model.Event) {
	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		b.logger.Error("sse failed to render event",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(string(event.Type), string(data))
}
