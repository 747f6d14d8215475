package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/bingohall/internal/bingo"
)

const channelPrefix = "bingo:events:"

// Channel is the Redis channel events of gameID are published on.
func Channel(gameID string) string { return channelPrefix + gameID }

// Redis mirrors game events to Redis pub/sub. Notify only queues the
// event; Run does the publishing.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
	queue  chan bingo.Event
}

var _ bingo.Notifier = (*Redis)(nil)

func NewRedis(client *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{
		client: client,
		logger: logger,
		queue:  make(chan bingo.Event, 256),
	}
}

func (r *Redis) Notify(e bingo.Event) {
	select {
	case r.queue <- e:
	default:
		r.logger.Warn("redis event queue full, dropping event", "type", e.Type, "game_id", e.GameID)
	}
}

// Run publishes queued events until ctx is done.
func (r *Redis) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-r.queue:
			r.publish(ctx, e)
		}
	}
}

func (r *Redis) publish(ctx context.Context, e bingo.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		r.logger.Error("encoding event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.client.Publish(ctx, Channel(e.GameID), data).Err(); err != nil {
		r.logger.Error("publishing event", "type", e.Type, "game_id", e.GameID, "error", err)
	}
}
