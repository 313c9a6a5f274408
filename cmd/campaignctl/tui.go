package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
)

type stepMsg generation.Step

// runDoneMsg arrives when the step sequence ends without a terminal step
type runDoneMsg struct{}

type generateModel struct {
	spinner  spinner.Model
	title    string
	steps    []generation.Step
	finished bool
	failed   bool
	aborted  bool
	cancel   context.CancelFunc
}

func newGenerateModel(title string, cancel context.CancelFunc) generateModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle
	return generateModel{spinner: sp, title: title, cancel: cancel}
}

func (m generateModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			m.cancel()
			return m, tea.Quit
		}
	case stepMsg:
		step := generation.Step(msg)
		m.steps = append(m.steps, step)
		if step.Terminal {
			m.finished = true
			m.failed = step.Failed
			return m, tea.Quit
		}
	case runDoneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m generateModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Generating "+m.title) + "\n\n")
	for i, step := range m.steps {
		current := i == len(m.steps)-1 && !m.finished
		switch {
		case current:
			b.WriteString(m.spinner.View() + " " + step.Label + "\n")
		default:
			b.WriteString(renderStep(step) + "\n")
		}
	}
	if len(m.steps) == 0 && !m.finished {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render("Validating brief...") + "\n")
	}
	if !m.finished {
		b.WriteString("\n" + mutedStyle.Render("q to cancel") + "\n")
	}
	return b.String()
}

func (m generateModel) lastStep() (generation.Step, bool) {
	if len(m.steps) == 0 {
		return generation.Step{}, false
	}
	return m.steps[len(m.steps)-1], true
}

func runTUI(ctx context.Context, presenter *generation.Presenter, in model.CampaignInput) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newGenerateModel(in.Name, cancel))
	go func() {
		for step := range presenter.Steps(ctx, model.Principal{}, in) {
			p.Send(stepMsg(step))
		}
		p.Send(runDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(generateModel)
	if m.aborted {
		return context.Canceled
	}
	if last, ok := m.lastStep(); ok && last.Failed {
		return errors.New(last.Label)
	}
	return nil
}
