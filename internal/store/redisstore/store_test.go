package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
	"github.com/genaimarketing/api/internal/store/redisstore"
	"github.com/genaimarketing/api/internal/store/storetest"
)

// newClient connects to TEST_REDIS_ADDR and flushes the selected database
func newClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return redisstore.New(newClient(t))
	})
}

func TestStore_ClosedClientIsUnavailable(t *testing.T) {
	client := newClient(t)
	s := redisstore.New(client)
	c, err := s.CreateCampaign(context.Background(), storetest.Alice, model.NewCampaign(storetest.SpringSale))
	require.NoError(t, err)

	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer dead.Close()

	_, err = redisstore.New(dead).GetCampaign(context.Background(), storetest.Alice, c.ID)
	require.Error(t, err)
	assert.True(t, storetest.IsUnavailable(err))
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestChangeFeed_SignalsOnUpdate(t *testing.T) {
	client := newClient(t)
	s := redisstore.New(client)
	feed := redisstore.NewChangeFeed(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := s.CreateCampaign(ctx, storetest.Alice, model.NewCampaign(storetest.SpringSale))
	require.NoError(t, err)

	changes, err := feed.Subscribe(ctx, c.ID)
	require.NoError(t, err)

	_, err = s.UpdateCampaign(ctx, storetest.Alice, c.ID, model.Fields{model.FieldCaptionsStatus: "completed"})
	require.NoError(t, err)

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	select {
	case _, ok := <-changes:
		if ok {
			// a coalesced signal may still be buffered
			_, ok = <-changes
		}
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not close after cancel")
	}
}
