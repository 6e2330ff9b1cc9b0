package observability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Event types published by the orchestrator and the cache store.
const (
	EventRequestCompleted = "request.completed"
	EventCacheTierFailed  = "cache.tier_failed"
)

// EventBus implements the domain EventPublisher interface on top of zap and prometheus.
type EventBus struct {
	metrics *Metrics
}

// NewEventBus creates a new event bus. A nil metrics value disables metric updates.
func NewEventBus(metrics *Metrics) *EventBus {
	return &EventBus{
		metrics: metrics,
	}
}

// Publish publishes an event with the given type and data.
func (e *EventBus) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	fields := make([]zap.Field, 0, len(data))
	for k, v := range data {
		fields = append(fields, zap.Any(k, v))
	}
	FromContext(ctx).Debug(eventType, fields...)

	if e.metrics == nil {
		return
	}

	switch eventType {
	case EventRequestCompleted:
		kind := label(data, "kind")
		cache := label(data, "cache")
		e.metrics.RequestsTotal.WithLabelValues(kind, label(data, "state"), label(data, "error_kind")).Inc()
		if cache == "hit" || cache == "miss" {
			e.metrics.CacheLookups.WithLabelValues(kind, cache).Inc()
		}
		if d, ok := data["duration"].(time.Duration); ok {
			e.metrics.ComputeDuration.WithLabelValues(kind, cache).Observe(d.Seconds())
		}
	case EventCacheTierFailed:
		e.metrics.TierFailures.WithLabelValues(label(data, "tier"), label(data, "operation")).Inc()
	}
}

func label(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	if s, isStringer := v.(fmt.Stringer); isStringer {
		return s.String()
	}
	return fmt.Sprint(v)
}
