package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/caioricciuti/plugin-updater/internal/config"
	"github.com/caioricciuti/plugin-updater/internal/ui"
	"github.com/caioricciuti/plugin-updater/internal/updater"
)

// Exit codes of the check command.
const (
	exitCheckFailed      = 1 // local or remote version unusable
	exitReleaseUnreached = 2 // release endpoint failed, result still loading
)

// checkParams bundles the dependencies and flags of the check command so
// runCheck can be tested without cobra or the real release endpoint.
type checkParams struct {
	stdout  io.Writer
	checker *updater.Checker
	opts    updater.UpdateOptions
}

func newCheckCommand(c *cli) *cobra.Command {
	var opts updater.UpdateOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the local version with the latest release",
		Long: `Compare the version recorded in the local version file with the
latest published release and report whether a patch, minor or major update
is available.

With --auto-prepare the release archive is downloaded and verified into the
staging directory when an update is found. Nothing is installed.`,
		Example: `  plugin-updater check
  plugin-updater check --auto-prepare
  plugin-updater check --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			defer c.teardown()

			if !cmd.Flags().Changed("auto-prepare") {
				opts.AutoPrepare = c.cfg.Release.AutoPrepare
			}

			p := checkParams{
				stdout:  cmd.OutOrStdout(),
				checker: newChecker(c.cfg),
				opts:    opts,
			}
			_, err := runCheck(cmd.Context(), p)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.AutoPrepare, "auto-prepare", false, "stage the release archive when an update is available")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "show a live status view while checking")
	return cmd
}

// newChecker wires the configured release endpoint and staging preparer.
func newChecker(cfg *config.Config) *updater.Checker {
	httpClient := &http.Client{Timeout: cfg.Release.HTTPTimeout()}

	client := updater.NewGitHubClient(
		updater.WithHTTPClient(httpClient),
		updater.WithReleaseURL(cfg.Release.URL),
		updater.WithUserAgent(cfg.Release.UserAgent),
	)
	preparer := &updater.StagingPreparer{
		Dir:         cfg.Update.StagingDir,
		AssetSuffix: cfg.Update.AssetSuffix,
		UserAgent:   cfg.Release.UserAgent,
		HTTPClient:  httpClient,
	}

	return updater.NewChecker(
		updater.WithVersionFile(cfg.VersionFile),
		updater.WithFetcher(client),
		updater.WithPreparer(preparer),
	)
}

// runCheck runs one version check and prints its outcome. The returned error
// is an *exitError when the check could not produce a comparison.
func runCheck(ctx context.Context, p checkParams) (updater.Result, error) {
	printer := ui.NewPrinter(p.stdout)

	if p.opts.Interactive {
		t := p.checker.Start(ctx, p.opts.AutoPrepare)
		model := ui.NewCheckModel(p.checker, t.Done())
		if _, err := tea.NewProgram(model, tea.WithOutput(p.stdout)).Run(); err != nil {
			return p.checker.Result(), fmt.Errorf("status view failed: %w", err)
		}
		if !model.Finished() {
			printer.Warning("Stopped waiting; the check did not finish")
			return p.checker.Result(), nil
		}
	} else {
		printer.Info("Checking for updates...")
		p.checker.CheckAndPrepare(ctx, p.opts.AutoPrepare)
		printer.Println(ui.SummaryCard(p.checker, printer.Styles(), 0).Render())
	}

	result := p.checker.Result()
	lastErr := p.checker.LastError()
	switch {
	case result == updater.ResultError:
		return result, &exitError{code: exitCheckFailed, err: lastErr}
	case updater.IsFetchFailure(lastErr):
		return result, &exitError{code: exitReleaseUnreached, err: lastErr}
	case result.UpdateAvailable() && !p.opts.AutoPrepare:
		printer.Info("Run with --auto-prepare to stage the release")
	}
	return result, nil
}
