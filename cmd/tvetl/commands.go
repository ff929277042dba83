package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/etl"
	"github.com/wdm0006/tvetl/pkg/io/parquetio"
	j "github.com/wdm0006/tvetl/pkg/janitor"
	"github.com/wdm0006/tvetl/pkg/profile"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect the date range, profile, clean and load it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			defer ctx.sync()
			sum, err := etl.NewRunner(cfg, nil, logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("run complete",
				zap.Int("records", sum.Records),
				zap.Int("rows", sum.Rows),
				zap.Int("columns", sum.Columns),
				zap.Int("inserted", sum.Inserted.Rows),
				zap.Int("failed", sum.Inserted.Failed),
				zap.String("parquet", sum.Parquet))
			return nil
		},
	}
	addRangeFlags(cmd, ctx)
	return cmd
}

func newCollectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Fetch the date range and write one JSON file per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			defer ctx.sync()
			_, err = etl.NewRunner(cfg, nil, logger).Collect(cmd.Context())
			return err
		},
	}
	addRangeFlags(cmd, ctx)
	return cmd
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the collected files and load Parquet and the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			defer ctx.sync()
			r := etl.NewRunner(cfg, nil, logger)
			f, err := r.Load()
			if err != nil {
				return err
			}
			cleaned, err := r.Clean(cmd.Context(), f)
			if err != nil {
				return err
			}
			_, _, err = r.Sink(cmd.Context(), cleaned)
			return err
		},
	}
}

func newProfileCommand(ctx *commandContext) *cobra.Command {
	var parquetPath string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print column statistics of the collected files or a Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensure()
			if err != nil {
				return err
			}
			defer ctx.sync()
			var f *j.Frame
			if parquetPath != "" {
				f, err = parquetio.ReadFile(parquetPath)
			} else {
				f, err = etl.NewRunner(cfg, nil, logger).Load()
			}
			if err != nil {
				return err
			}
			p := profile.Collect(f, cfg.Profile.TopK)
			fmt.Fprintln(cmd.OutOrStdout(), p.Text())
			if cfg.Profile.Path != "" {
				return p.WriteJSON(cfg.Profile.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Profile this Parquet file instead of the collected JSON")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tvetl", version)
		},
	}
}
