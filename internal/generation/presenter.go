package generation

import (
	"context"
	"iter"

	"github.com/genaimarketing/api/internal/model"
)

// Step is one progress label shown to the user
type Step struct {
	Label      string `json:"label"`
	Terminal   bool   `json:"terminal"`
	Failed     bool   `json:"failed"`
	Progress   int    `json:"progress"`
	Stage      string `json:"stage,omitempty"`
	CampaignID string `json:"campaignId,omitempty"`
}

// positions: created, then generating/completed per stage, then the terminal step
var totalSteps = 2 + 2*len(stages)

func progress(pos int) int {
	return pos * 100 / totalSteps
}

// Describe turns an orchestrator event into the label the user sees
func Describe(e Event) Step {
	s := Step{Stage: e.Stage.Name, CampaignID: e.CampaignID}
	switch e.Kind {
	case EventCreated:
		s.Label = LabelCreating
		s.Progress = progress(1)
	case EventStageGenerating:
		s.Label = e.Stage.GeneratingLabel
		s.Progress = progress(2 + 2*e.StageIndex)
	case EventStageCompleted:
		s.Label = e.Stage.CompletedLabel
		s.Progress = progress(3 + 2*e.StageIndex)
	case EventCompleted:
		s.Label = LabelCompleted
		s.Terminal = true
		s.Progress = 100
	case EventFailed:
		s.Terminal = true
		s.Failed = true
		if e.Err != nil {
			s.Label = e.Err.Error()
		}
		if e.Stage.Name != "" {
			s.Progress = progress(2 + 2*e.StageIndex)
		}
	}
	return s
}

// Presenter exposes a generation run as a sequence of progress steps
type Presenter struct {
	orchestrator *Orchestrator
}

func NewPresenter(o *Orchestrator) *Presenter {
	return &Presenter{orchestrator: o}
}

// Steps returns a lazy sequence; each range over it starts a new run. Invalid input yields
// a single failed terminal step and creates no record. Breaking out of the range cancels the run.
func (p *Presenter) Steps(ctx context.Context, principal model.Principal, in model.CampaignInput) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if err := ValidateInput(in); err != nil {
			yield(Step{Label: err.Error(), Terminal: true, Failed: true})
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stopped := false
		observer := func(e Event) {
			if stopped {
				return
			}
			if !yield(Describe(e)) {
				stopped = true
				cancel()
			}
		}
		_, _ = p.orchestrator.Run(ctx, principal, in, observer)
	}
}
