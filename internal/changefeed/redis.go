package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "meetings:changed"

// Redis — рассылка через redis pub/sub для нескольких инстансов сервиса.
type Redis struct {
	rdb     *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedis(rdb *redis.Client, channel string, logger *slog.Logger) *Redis {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{rdb: rdb, channel: channel, logger: logger}
}

func (r *Redis) Publish(ctx context.Context, c Change) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context) (<-chan Change, error) {
	ps := r.rdb.Subscribe(ctx, r.channel)
	// дожидаемся подтверждения подписки, иначе ранние сообщения теряются
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan Change, defaultBuffer)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c, err := decodeChange(msg.Payload)
				if err != nil {
					r.logger.Warn("skip malformed change", "channel", r.channel, "err", err)
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Ping — проверка для /readyz.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func decodeChange(payload string) (Change, error) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return Change{}, err
	}
	if c.Kind == "" {
		return Change{}, fmt.Errorf("change without kind")
	}
	return c, nil
}
