// Package notifier broadcasts obligation changes after they are committed.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
)

// Channel is the pub/sub channel obligation changes are published on.
const Channel = "obligations:changed"

const publishTimeout = 2 * time.Second

// RedisNotifier publishes change events as JSON on Channel.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier publishing through client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// Notify publishes event. Failures are logged and never returned; the change
// is already durable.
func (n *RedisNotifier) Notify(ctx context.Context, event adapter.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode change event", "error", err, "type", event.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.client.Publish(ctx, Channel, payload).Err(); err != nil {
		slog.Error("Failed to publish change event",
			"error", err,
			"type", event.Type,
			"client", event.ClientName,
		)
	}
}

// LogNotifier writes change events to the structured log.
type LogNotifier struct{}

// Notify logs event.
func (LogNotifier) Notify(_ context.Context, event adapter.ChangeEvent) {
	attrs := []any{
		"type", event.Type,
		"client", event.ClientName,
		"created", len(event.Created),
		"deactivated", len(event.Deactivated),
		"updated", len(event.Updated),
		"deleted", len(event.Deleted),
	}
	if event.AnalysisID != nil {
		attrs = append(attrs, "analysis_id", event.AnalysisID.String())
	}
	slog.Info("Obligations changed", attrs...)
}

// Multi fans an event out to several notifiers in order.
type Multi []adapter.ChangeNotifier

// Notify forwards event to every notifier.
func (m Multi) Notify(ctx context.Context, event adapter.ChangeEvent) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

// Subscribe decodes events published on Channel until ctx is done. Payloads
// that fail to decode are skipped.
func Subscribe(ctx context.Context, client *redis.Client) <-chan adapter.ChangeEvent {
	sub := client.Subscribe(ctx, Channel)
	out := make(chan adapter.ChangeEvent)

	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event adapter.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("Skipping malformed change event", "error", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

var (
	_ adapter.ChangeNotifier = (*RedisNotifier)(nil)
	_ adapter.ChangeNotifier = LogNotifier{}
	_ adapter.ChangeNotifier = Multi(nil)
)
