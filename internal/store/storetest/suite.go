// Package storetest holds the behaviour every store driver must share.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

var (
	Alice = model.Principal{UserID: "user-alice", Email: "alice@example.com"}
	Bob   = model.Principal{UserID: "user-bob", Email: "bob@example.com"}
)

// SpringSale is the brief used throughout the suite
var SpringSale = model.CampaignInput{
	Name:           "Spring Sale",
	BankProduct:    model.ProductCreditCard,
	Theme:          "Travel Rewards",
	TargetAudience: "Students (18-24 years old)",
}

// Run exercises a store implementation. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("CampaignCRUD", func(t *testing.T) { testCampaignCRUD(t, newStore(t)) })
	t.Run("OwnerScoping", func(t *testing.T) { testOwnerScoping(t, newStore(t)) })
	t.Run("UpdateRejectsInvalidPatch", func(t *testing.T) { testUpdateRejects(t, newStore(t)) })
	t.Run("MissingRecords", func(t *testing.T) { testMissing(t, newStore(t)) })
	t.Run("ListSort", func(t *testing.T) { testListSort(t, newStore(t)) })
	t.Run("AssetCRUD", func(t *testing.T) { testAssetCRUD(t, newStore(t)) })
	t.Run("ConcurrentFieldUpdates", func(t *testing.T) { testConcurrentUpdates(t, newStore(t)) })
}

func testCampaignCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(SpringSale))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, Alice.UserID, created.User)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, model.CampaignStatusGenerating, created.Status)
	for _, f := range model.StatusFields {
		v, ok := created.StageStatus(f)
		require.True(t, ok)
		assert.Equal(t, model.StageStatusPending, v, f)
	}

	got, err := s.GetCampaign(ctx, Alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", got.Name)
	assert.Equal(t, "Travel Rewards", got.Theme)
	assert.Equal(t, "Students (18-24 years old)", got.TargetAudience)

	updated, err := s.UpdateCampaign(ctx, Alice, created.ID, model.Fields{
		model.FieldCaptionsStatus: string(model.StageStatusGenerating),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StageStatusGenerating, updated.CaptionsStatus)
	assert.Equal(t, "Spring Sale", updated.Name, "update must merge, not replace")
	assert.Equal(t, model.StageStatusPending, updated.NewsletterStatus)

	list, err := s.ListCampaigns(ctx, Alice, store.DefaultSort)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	deleted, err := s.DeleteCampaign(ctx, Alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.GetCampaign(ctx, Alice, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testOwnerScoping(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(SpringSale))
	require.NoError(t, err)

	_, err = s.GetCampaign(ctx, Bob, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateCampaign(ctx, Bob, created.ID, model.Fields{model.FieldName: "stolen"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteCampaign(ctx, Bob, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListCampaigns(ctx, Bob, store.DefaultSort)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetCampaign(ctx, Alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", got.Name)
}

func testUpdateRejects(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(SpringSale))
	require.NoError(t, err)

	cases := map[string]model.Fields{
		"unknown key":      {"colour": "blue"},
		"bad stage value":  {model.FieldImagesStatus: "done"},
		"bad status value": {model.FieldStatus: "finished"},
		"readonly key":     {model.FieldID: "other"},
		"mixed":            {model.FieldName: "Renamed", model.FieldVideoStatus: "nope"},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.UpdateCampaign(ctx, Alice, created.ID, patch)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}

	got, err := s.GetCampaign(ctx, Alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", got.Name)
	assert.Equal(t, model.StageStatusPending, got.VideoStatus)
}

func testMissing(t *testing.T, s store.Store) {
	ctx := context.Background()
	id := "00000000-0000-0000-0000-000000000000"

	_, err := s.GetCampaign(ctx, Alice, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateCampaign(ctx, Alice, id, model.Fields{model.FieldName: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.DeleteCampaign(ctx, Alice, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetAsset(ctx, Alice, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetAssetByCampaign(ctx, Alice, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testListSort(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, name := range []string{"Bravo", "Alpha", "Charlie"} {
		in := SpringSale
		in.Name = name
		_, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(in))
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	names := func(sortSpec string) []string {
		sort, err := store.ParseSort(sortSpec, store.CampaignShorthandField)
		require.NoError(t, err)
		list, err := s.ListCampaigns(ctx, Alice, sort)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, c := range list {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names("name"))
	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, names("-name"))
	assert.Equal(t, []string{"Bravo", "Alpha", "Charlie"}, names("created_at"))
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names("asc"))
	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, names("desc"))
}

func testAssetCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	c, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(SpringSale))
	require.NoError(t, err)

	created, err := s.CreateAsset(ctx, Alice, model.NewAssetSet(c.ID))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, c.ID, created.CampaignID)
	assert.Empty(t, created.Captions.Facebook)

	byCampaign, err := s.GetAssetByCampaign(ctx, Alice, c.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCampaign.ID)

	_, err = s.GetAssetByCampaign(ctx, Bob, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	updated, err := s.UpdateAsset(ctx, Alice, created.ID, model.Fields{
		"captions.facebook":            "Fly further this spring",
		"ads.leaderboard.leaderBoard2": "https://cdn.example.com/lb2.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fly further this spring", updated.Captions.Facebook)
	assert.Equal(t, "https://cdn.example.com/lb2.png", updated.Ads.Leaderboard.LeaderBoard2)

	_, err = s.UpdateAsset(ctx, Alice, created.ID, model.Fields{"captions.myspace": "x"})
	assert.ErrorIs(t, err, model.ErrValidation)

	got, err := s.GetAsset(ctx, Alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fly further this spring", got.Captions.Facebook)

	list, err := s.ListAssets(ctx, Alice, store.DefaultSort)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.DeleteAsset(ctx, Alice, created.ID)
	require.NoError(t, err)

	_, err = s.GetAssetByCampaign(ctx, Alice, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testConcurrentUpdates(t *testing.T, s store.Store) {
	ctx := context.Background()

	c, err := s.CreateCampaign(ctx, Alice, model.NewCampaign(SpringSale))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, len(model.StatusFields))
	for _, f := range model.StatusFields {
		wg.Add(1)
		go func(field string) {
			defer wg.Done()
			_, err := s.UpdateCampaign(ctx, Alice, c.ID, model.Fields{field: string(model.StageStatusCompleted)})
			if err != nil {
				errs <- fmt.Errorf("%s: %w", field, err)
			}
		}(f)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	got, err := s.GetCampaign(ctx, Alice, c.ID)
	require.NoError(t, err)
	assert.True(t, got.AllStagesCompleted(), "every field update must survive concurrent merges")
}

// IsUnavailable is a helper for driver tests that close the backing connection
func IsUnavailable(err error) bool {
	return errors.Is(err, store.ErrUnavailable)
}
