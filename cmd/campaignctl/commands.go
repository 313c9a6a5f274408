package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/genaimarketing/api/internal/client"
	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
)

const (
	envAPIURL   = "CAMPAIGN_API_URL"
	envAPIToken = "CAMPAIGN_API_TOKEN"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// newClient loads the env file and builds an API client. Values from the env file only
// apply when neither the flag nor the process environment set them.
func newClient(cmd *cli.Command) (*client.CampaignClient, error) {
	envFile := cmd.String("env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	api := cmd.String("api")
	if !cmd.IsSet("api") {
		if v := os.Getenv(envAPIURL); v != "" {
			api = v
		}
	}
	token := cmd.String("token")
	if token == "" {
		token = os.Getenv(envAPIToken)
	}
	return client.NewCampaignClient(api, token, requestTimeout), nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	records, err := newClient(cmd)
	if err != nil {
		return err
	}

	waiter := generation.NewWaiter(generation.NewPollingWatcher(records))
	orchestrator := generation.NewOrchestrator(records, waiter, generation.Options{
		Timeout:      cmd.Duration("timeout"),
		PollInterval: cmd.Duration("interval"),
	}, nil)
	presenter := generation.NewPresenter(orchestrator)

	in := model.CampaignInput{
		Name:           cmd.String("name"),
		Theme:          cmd.String("theme"),
		TargetAudience: cmd.String("audience"),
		BankProduct:    cmd.String("product"),
		Description:    cmd.String("description"),
	}

	if cmd.Bool("tui") {
		return runTUI(ctx, presenter, in)
	}

	fmt.Println(titleStyle.Render("Generating " + in.Name))
	var last generation.Step
	for step := range presenter.Steps(ctx, model.Principal{}, in) {
		fmt.Println(renderStep(step))
		last = step
	}
	if last.Failed {
		return errors.New(last.Label)
	}
	if !last.Terminal {
		return ctx.Err()
	}
	return nil
}

func renderStep(step generation.Step) string {
	progress := mutedStyle.Render(fmt.Sprintf("[%3d%%]", step.Progress))
	switch {
	case step.Failed:
		return progress + " " + errorStyle.Render("✗ "+step.Label)
	case step.Terminal:
		return progress + " " + okStyle.Render("✓ "+step.Label)
	}
	return progress + " " + step.Label
}

func waitAction(ctx context.Context, cmd *cli.Command) error {
	records, err := newClient(cmd)
	if err != nil {
		return err
	}

	id, field := cmd.String("id"), cmd.String("field")
	waiter := generation.NewWaiter(generation.NewPollingWatcher(records))
	err = waiter.AwaitField(ctx, model.Principal{}, id, field, model.StageStatus(cmd.String("value")),
		generation.WithTimeout(cmd.Duration("timeout")),
		generation.WithPollInterval(cmd.Duration("interval")),
	)
	if err != nil {
		return err
	}

	fmt.Println(okStyle.Render(fmt.Sprintf("%s reads %s", field, cmd.String("value"))))
	return nil
}

func statusAction(ctx context.Context, cmd *cli.Command) error {
	records, err := newClient(cmd)
	if err != nil {
		return err
	}

	c, err := records.GetCampaign(ctx, model.Principal{}, cmd.String("id"))
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(c.Name) + " " + mutedStyle.Render(c.ID))
	fields := c.Fields()
	for _, f := range model.StatusFields {
		fmt.Printf("  %-26s %s\n", f, styleStatus(fields[f]))
	}
	fmt.Printf("  %-26s %s\n", model.FieldStatus, styleStatus(string(c.Status)))
	return nil
}

func styleStatus(v string) string {
	switch v {
	case string(model.StageStatusCompleted):
		return okStyle.Render(v)
	case string(model.StageStatusError), string(model.CampaignStatusFailed):
		return errorStyle.Render(v)
	case string(model.StageStatusGenerating):
		return workingStyle.Render(v)
	}
	return mutedStyle.Render(v)
}
