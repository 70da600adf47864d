package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caioricciuti/plugin-updater/internal/config"
	"github.com/caioricciuti/plugin-updater/internal/logger"
)

// cli holds the global flags and the state set up for commands that need it.
type cli struct {
	debug     bool
	configDir string

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "plugin-updater",
		Short: "Check for new releases and copy plugin assets into build output",
		Long: `plugin-updater checks the local version record against the latest
published release and copies a plugin's settings, dependency libraries and
static files into its compiled output directory.

CONFIGURATION:
  Config: ~/.plugin-updater/config.yaml
  Logs:   ~/.plugin-updater/debug.log`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "stream debug logs to stderr")
	root.PersistentFlags().StringVar(&c.configDir, "config-dir", "", "directory holding config.yaml (default ~/.plugin-updater)")

	root.AddCommand(
		newVersionCommand(),
		newLogsCommand(),
		newCheckCommand(c),
		newCopyCommand(c),
	)
	return root
}

// setup initializes logging and loads the configuration.
func (c *cli) setup() error {
	if err := logger.Initialize(c.debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var err error
	if c.configDir != "" {
		c.cfg, err = config.LoadFrom(c.configDir)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	if !c.debug {
		logger.GetLogger().SetLevel(c.cfg.LogLevel)
	}
	logger.Info("Starting plugin-updater v%s", version)
	return nil
}

func (c *cli) teardown() {
	logger.GetLogger().Close()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plugin-updater v%s\n", version)
		},
	}
}

func newLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show the debug log file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(false); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Log file location: %s\n", logger.GetLogPath())
			return nil
		},
	}
}
