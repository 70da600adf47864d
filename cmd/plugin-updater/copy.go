package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/caioricciuti/plugin-updater/internal/logger"
	"github.com/caioricciuti/plugin-updater/internal/plugincopy"
	"github.com/caioricciuti/plugin-updater/internal/task"
	"github.com/caioricciuti/plugin-updater/internal/ui"
)

// Copy parts selectable with --only.
const (
	partRoot     = "root"
	partSettings = "settings"
	partDeps     = "deps"
	partStatic   = "static"
)

var allParts = []string{partRoot, partSettings, partDeps, partStatic}

// copyParams bundles the inputs of the copy command.
type copyParams struct {
	stdout         io.Writer
	copier         *plugincopy.Copier
	source         string
	dest           string
	only           []string
	rootExtensions []string
	checkSpace     bool
}

func newCopyCommand(c *cli) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "copy <source> <dest>",
		Short: "Copy a plugin's assets into its build output",
		Long: `Copy the top-level files of <source> and the settings, dependency and
static folders next to its project file into <dest>.

Settings folders that already exist in <dest> are copied under a suffixed
name (settings_new by default) so user settings are kept. Dependency folders
are flattened into <dest>.`,
		Example: `  plugin-updater copy Plugins/Source/MyPlugin Plugins/Compiled/MyPlugin
  plugin-updater copy src out --only settings,static`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			defer c.teardown()

			copier := plugincopy.New()
			copier.FilterRootExtensions = c.cfg.Copy.FilterRootExtensions
			if len(c.cfg.Copy.DescriptorExtensions) > 0 {
				copier.DescriptorExtensions = c.cfg.Copy.DescriptorExtensions
			}
			copier.SettingsSuffix = c.cfg.Copy.SettingsSuffix

			return runCopy(copyParams{
				stdout:         cmd.OutOrStdout(),
				copier:         copier,
				source:         args[0],
				dest:           args[1],
				only:           only,
				rootExtensions: c.cfg.Copy.RootExtensions,
				checkSpace:     c.cfg.Copy.CheckFreeSpace,
			})
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "parts to copy: "+strings.Join(allParts, ","))
	return cmd
}

// parseParts validates --only values. No values selects every part.
func parseParts(only []string) (map[string]bool, error) {
	parts := make(map[string]bool, len(allParts))
	if len(only) == 0 {
		for _, p := range allParts {
			parts[p] = true
		}
		return parts, nil
	}

	for _, p := range only {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case partRoot, partSettings, partDeps, partStatic:
			parts[p] = true
		default:
			return nil, fmt.Errorf("unknown part %q (valid: %s)", p, strings.Join(allParts, ", "))
		}
	}
	return parts, nil
}

func runCopy(p copyParams) error {
	printer := ui.NewPrinter(p.stdout)

	parts, err := parseParts(p.only)
	if err != nil {
		return err
	}

	if p.checkSpace {
		report, err := plugincopy.CheckFreeSpace(p.source, p.dest)
		switch {
		case err != nil:
			logger.Warn("PluginCopyFiles -> free space check failed: %v", err)
		case !report.Sufficient():
			printer.Warning("%s has %s free, the copy needs up to %s",
				report.Volume, humanize.Bytes(report.Free), humanize.Bytes(report.Required))
		default:
			logger.Debug("PluginCopyFiles -> %s needed, %s free on %s",
				humanize.Bytes(report.Required), humanize.Bytes(report.Free), report.Volume)
		}
	}

	var tasks []*task.Task
	if parts[partRoot] {
		tasks = append(tasks, p.copier.CopyRootFiles(p.source, p.dest, p.rootExtensions))
	}

	presets := []struct {
		part string
		copy func(sourceDir, destDir string) ([]*task.Task, error)
	}{
		{partSettings, p.copier.CopySettings},
		{partDeps, p.copier.CopyDependencies},
		{partStatic, p.copier.CopyStaticFiles},
	}

	noProject := false
	for _, preset := range presets {
		if !parts[preset.part] {
			continue
		}
		started, err := preset.copy(p.source, p.dest)
		if err != nil {
			// Let already started copies finish before reporting.
			_ = task.WaitAll(tasks...)
			printer.Error("Copying %s failed: %v", preset.part, err)
			return &exitError{code: 1, err: err}
		}
		if started == nil {
			noProject = true
		}
		tasks = append(tasks, started...)
	}

	if noProject {
		name := p.source
		if abs, err := filepath.Abs(p.source); err == nil {
			name = abs
		}
		printer.Warning("No project file named %s found under %s, folders skipped",
			filepath.Base(name), p.source)
	}

	if err := task.WaitAll(tasks...); err != nil {
		printer.Error("Copy failed: %v", err)
		return &exitError{code: 1, err: err}
	}

	printer.Success("Finished %d copy task(s) from %s to %s", len(tasks), p.source, p.dest)
	return nil
}
