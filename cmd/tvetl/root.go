package main

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/logging"
)

var version = "0.1.0-dev"

type commandContext struct {
	configFlag   string
	logLevelFlag string
	startFlag    string
	endFlag      string

	once   sync.Once
	config *config.Config
	logger *zap.Logger
	err    error
}

// ensure loads the configuration, applies flag overrides and builds the
// logger once per process. Every log line carries the run id.
func (c *commandContext) ensure() (*config.Config, *zap.Logger, error) {
	c.once.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		if c.logLevelFlag != "" {
			cfg.Logging.Level = c.logLevelFlag
		}
		if c.startFlag != "" {
			cfg.Collect.Start = c.startFlag
		}
		if c.endFlag != "" {
			cfg.Collect.End = c.endFlag
		}
		if err := cfg.Validate(); err != nil {
			c.err = err
			return
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			c.err = err
			return
		}
		c.config = cfg
		c.logger = logger.With(zap.String("run_id", uuid.NewString()))
	})
	return c.config, c.logger, c.err
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tvetl",
		Short:         "Collect, clean and load the TVMaze web schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Override logging.level")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newCollectCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newProfileCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func addRangeFlags(cmd *cobra.Command, ctx *commandContext) {
	cmd.Flags().StringVar(&ctx.startFlag, "start", "", "First day to collect (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ctx.endFlag, "end", "", "Last day to collect, inclusive (YYYY-MM-DD)")
}
