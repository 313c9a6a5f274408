package generation

import (
	"context"
	"time"

	"github.com/genaimarketing/api/internal/model"
)

// CampaignReader reads a campaign record on behalf of a principal
type CampaignReader interface {
	GetCampaign(ctx context.Context, p model.Principal, id string) (*model.Campaign, error)
}

// Observation is one read of a campaign field
type Observation struct {
	Value string
	Err   error
	At    time.Time
}

// Watcher streams observations of a single field. The channel is closed after an
// observation carrying an error or when ctx is done.
type Watcher interface {
	Watch(ctx context.Context, p model.Principal, campaignID, field string, interval time.Duration) <-chan Observation
}

// Notifier signals that a campaign may have changed
type Notifier interface {
	Subscribe(ctx context.Context, campaignID string) (<-chan struct{}, error)
}

// PollingWatcher reads the record immediately and then once per interval
type PollingWatcher struct {
	Reader CampaignReader
}

func NewPollingWatcher(r CampaignReader) *PollingWatcher {
	return &PollingWatcher{Reader: r}
}

func (w *PollingWatcher) Watch(ctx context.Context, p model.Principal, campaignID, field string, interval time.Duration) <-chan Observation {
	out := make(chan Observation)
	go watchLoop(ctx, w.Reader, p, campaignID, field, interval, nil, out)
	return out
}

// NotifyingWatcher re-reads the record whenever the notifier fires, and at least once per interval
type NotifyingWatcher struct {
	Reader   CampaignReader
	Notifier Notifier
}

func NewNotifyingWatcher(r CampaignReader, n Notifier) *NotifyingWatcher {
	return &NotifyingWatcher{Reader: r, Notifier: n}
}

func (w *NotifyingWatcher) Watch(ctx context.Context, p model.Principal, campaignID, field string, interval time.Duration) <-chan Observation {
	out := make(chan Observation)
	changes, err := w.Notifier.Subscribe(ctx, campaignID)
	if err != nil {
		// fall back to plain polling
		changes = nil
	}
	go watchLoop(ctx, w.Reader, p, campaignID, field, interval, changes, out)
	return out
}

// watchLoop performs one read at a time and blocks until the consumer takes it
func watchLoop(ctx context.Context, r CampaignReader, p model.Principal, campaignID, field string,
	interval time.Duration, changes <-chan struct{}, out chan<- Observation) {
	defer close(out)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		obs := read(ctx, r, p, campaignID, field)
		if ctx.Err() != nil {
			return
		}

		select {
		case out <- obs:
		case <-ctx.Done():
			return
		}
		if obs.Err != nil {
			return
		}

		select {
		case <-ticker.C:
		case _, ok := <-changes:
			if !ok {
				changes = nil
			}
		case <-ctx.Done():
			return
		}
	}
}

func read(ctx context.Context, r CampaignReader, p model.Principal, campaignID, field string) Observation {
	c, err := r.GetCampaign(ctx, p, campaignID)
	if err != nil {
		return Observation{Err: err, At: time.Now()}
	}
	return Observation{Value: c.Fields()[field], At: time.Now()}
}
