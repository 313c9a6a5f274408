package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ChangeFeed announces campaign updates published by Store
type ChangeFeed struct {
	redis *redis.Client
}

func NewChangeFeed(redisClient *redis.Client) *ChangeFeed {
	return &ChangeFeed{redis: redisClient}
}

// Subscribe returns a channel that receives a value after each update of the campaign.
// Notifications are coalesced: a slow reader sees at most one pending signal.
// The channel is closed when ctx is done.
func (f *ChangeFeed) Subscribe(ctx context.Context, campaignID string) (<-chan struct{}, error) {
	sub := f.redis.Subscribe(ctx, ChangesChannel(campaignID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, wrap("subscribe", err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
