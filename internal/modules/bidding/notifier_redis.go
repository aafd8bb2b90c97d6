// README: Redis-backed event publisher for bidding sessions.
package bidding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"seabid/internal/types"
)

const eventChannelPrefix = "bidding:events:%s"

// RedisNotifier publishes session events to a per-request pub/sub channel so
// clients off the bidding surface can be pushed arrivals instead of relying
// on in-process timers. Transient messaging only; nothing is stored.
type RedisNotifier struct {
	redis *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{redis: client}
}

func (n *RedisNotifier) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return n.redis.Publish(ctx, eventChannel(e.RequestID), payload).Err()
}

// Subscribe returns the event stream for one request. The caller owns the
// subscription and must Close it.
func (n *RedisNotifier) Subscribe(ctx context.Context, requestID types.ID) *redis.PubSub {
	return n.redis.Subscribe(ctx, eventChannel(requestID))
}

func eventChannel(requestID types.ID) string {
	return fmt.Sprintf(eventChannelPrefix, string(requestID))
}
