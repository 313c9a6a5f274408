package pgstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/store"
	"github.com/genaimarketing/api/internal/store/pgstore"
	"github.com/genaimarketing/api/internal/store/storetest"
)

func TestStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := pgstore.Open(ctx, url)
		require.NoError(t, err)
		require.NoError(t, s.EnsureSchema(ctx))

		_, err = s.Pool().Exec(ctx, `TRUNCATE campaigns, assets`)
		require.NoError(t, err)

		t.Cleanup(func() { s.Close() })
		return s
	})
}
