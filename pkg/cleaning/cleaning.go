// Package cleaning assembles the ordered cleaning pipeline applied to the
// flattened schedule table.
package cleaning

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	j "github.com/wdm0006/tvetl/pkg/janitor"
	"github.com/wdm0006/tvetl/pkg/transform/encode"
	"github.com/wdm0006/tvetl/pkg/transform/impute"
	"github.com/wdm0006/tvetl/pkg/transform/outliers"
	"github.com/wdm0006/tvetl/pkg/transform/prune"
	"github.com/wdm0006/tvetl/pkg/transform/standardize"
)

// NewPipeline returns the stages in their fixed order: column pruning,
// sentinel rows, list joining, weekday recoding, sparse rows, median
// imputation, duplicates, rare-value bucketing and one-hot encoding. Stages
// named in cfg.Skip are disabled.
func NewPipeline(cfg config.CleaningConfig) *j.Pipeline {
	p := j.NewPipeline()
	p.Add(&prune.DropColumns{Columns: cfg.DropColumns})
	if cfg.SentinelColumn != "" {
		p.Add(&outliers.DropValue{Column: cfg.SentinelColumn, Value: cfg.SentinelValue})
	}
	for _, col := range cfg.ListColumns {
		p.Add(&standardize.JoinList{Column: col, Sep: cfg.ListSeparator})
	}
	if cfg.WeekdayColumn != "" {
		p.Add(&standardize.MapTokens{Column: cfg.WeekdayColumn, Map: standardize.Weekdays, Join: cfg.ListSeparator})
	}
	p.Add(&prune.DropSparse{MaxNullRatio: cfg.MaxNullRatio})
	for _, col := range cfg.MedianColumns {
		p.Add(&impute.Median{Column: col})
	}
	p.Add(&prune.Dedupe{})
	if cfg.BucketColumn != "" {
		p.Add(&encode.BucketRare{Column: cfg.BucketColumn, MaxCount: cfg.BucketMaxCount, Label: cfg.BucketLabel})
	}
	for _, col := range cfg.OneHotColumns {
		p.Add(&encode.OneHot{Column: col})
	}
	return p.Skip(cfg.Skip...)
}

type Cleaner struct {
	pipeline *j.Pipeline
	logger   *zap.Logger
}

func NewCleaner(cfg config.CleaningConfig, logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{pipeline: NewPipeline(cfg), logger: logger}
}

// Stages lists the enabled stage names in order.
func (c *Cleaner) Stages() []string { return c.pipeline.Names() }

// Clean runs the pipeline over f. f must not be used afterwards; the cleaned
// frame is returned.
func (c *Cleaner) Clean(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	rows, cols := f.Rows(), f.Cols()
	out, err := c.pipeline.Run(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	c.logger.Info("data cleaning complete",
		zap.Int("rows_in", rows),
		zap.Int("cols_in", cols),
		zap.Int("rows", out.Rows()),
		zap.Int("cols", out.Cols()))
	return out, nil
}
