package generation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/store"
)

func labels(steps []generation.Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Label)
	}
	return out
}

func TestPresenter_SuccessSequence(t *testing.T) {
	r := newRecords()
	startWorker(t, r.Memory, alice, nil)
	p := generation.NewPresenter(newOrchestrator(r, fast))

	var steps []generation.Step
	for step := range p.Steps(context.Background(), alice, springSale) {
		steps = append(steps, step)
	}

	assert.Equal(t, []string{
		"Creating campaign...",
		"Generating social media captions...",
		"Social media captions generated.",
		"Creating newsletter content...",
		"Newsletter content created.",
		"Generating relevant image...",
		"Images generated.",
		"Creating Ad Banners...",
		"Ad Banners ready.",
		"Creating short video...",
		"Short video created.",
		"All assets generated!",
	}, labels(steps))

	last := steps[len(steps)-1]
	assert.True(t, last.Terminal)
	assert.False(t, last.Failed)
	assert.Equal(t, 100, last.Progress)
	assert.NotEmpty(t, last.CampaignID)

	for i := 0; i < len(steps)-1; i++ {
		assert.False(t, steps[i].Terminal)
		assert.LessOrEqual(t, steps[i].Progress, steps[i+1].Progress)
	}
}

func TestPresenter_FailureIsTerminal(t *testing.T) {
	r := newRecords()
	startWorker(t, r.Memory, alice, map[string]model.StageStatus{
		model.FieldImagesStatus: model.StageStatusError,
	})
	p := generation.NewPresenter(newOrchestrator(r, fast))

	var steps []generation.Step
	for step := range p.Steps(context.Background(), alice, springSale) {
		steps = append(steps, step)
	}

	require.NotEmpty(t, steps)
	last := steps[len(steps)-1]
	assert.True(t, last.Terminal)
	assert.True(t, last.Failed)
	assert.Equal(t, "Error in images generation.", last.Label)
	assert.Equal(t, "images", last.Stage)
	assert.NotContains(t, labels(steps), "Creating short video...")
}

func TestPresenter_BreakCancelsRun(t *testing.T) {
	r := newRecords()
	startWorker(t, r.Memory, alice, nil)
	p := generation.NewPresenter(newOrchestrator(r, fast))

	var campaignID string
	for step := range p.Steps(context.Background(), alice, springSale) {
		campaignID = step.CampaignID
		break
	}
	require.NotEmpty(t, campaignID)

	assert.Empty(t, r.Patches(), "no stage may start after the consumer stopped")
	got, err := r.Memory.GetCampaign(context.Background(), alice, campaignID)
	require.NoError(t, err)
	assert.Equal(t, model.StageStatusPending, got.CaptionsStatus)
}

func TestPresenter_InvalidInputCreatesNothing(t *testing.T) {
	r := newRecords()
	p := generation.NewPresenter(newOrchestrator(r, fast))

	var steps []generation.Step
	for step := range p.Steps(context.Background(), alice, model.CampaignInput{Theme: "Travel"}) {
		steps = append(steps, step)
	}

	require.Len(t, steps, 1)
	assert.True(t, steps[0].Terminal)
	assert.True(t, steps[0].Failed)
	assert.Contains(t, steps[0].Label, "name: required")

	list, err := r.Memory.ListCampaigns(context.Background(), alice, store.DefaultSort)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPresenter_EachRangeStartsNewRun(t *testing.T) {
	r := newRecords()
	startWorker(t, r.Memory, alice, nil)
	seq := generation.NewPresenter(newOrchestrator(r, fast)).Steps(context.Background(), alice, springSale)

	for range 2 {
		for step := range seq {
			if step.Terminal {
				assert.False(t, step.Failed, step.Label)
			}
		}
	}

	list, err := r.Memory.ListCampaigns(context.Background(), alice, store.DefaultSort)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDescribe(t *testing.T) {
	video, _ := generation.StageByName("video")

	s := generation.Describe(generation.Event{Kind: generation.EventStageGenerating, Stage: video, StageIndex: 4})
	assert.Equal(t, "Creating short video...", s.Label)
	assert.Equal(t, "video", s.Stage)
	assert.False(t, s.Terminal)

	s = generation.Describe(generation.Event{Kind: generation.EventFailed, Err: errors.New("boom")})
	assert.True(t, s.Terminal)
	assert.True(t, s.Failed)
	assert.Equal(t, "boom", s.Label)

	s = generation.Describe(generation.Event{Kind: generation.EventCompleted})
	assert.Equal(t, generation.LabelCompleted, s.Label)
	assert.Equal(t, 100, s.Progress)
}
