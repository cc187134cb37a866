package service

import (
	"context"
	"strconv"

	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/logging"
)

func publish(ctx context.Context, p events.Publisher, topic string, id int, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, strconv.Itoa(id), event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
