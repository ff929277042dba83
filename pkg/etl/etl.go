// Package etl wires the collector, cleaner, profiler and sinks into the
// stages exposed by the command line.
package etl

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/cleaning"
	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/io/jsonio"
	"github.com/wdm0006/tvetl/pkg/io/parquetio"
	j "github.com/wdm0006/tvetl/pkg/janitor"
	"github.com/wdm0006/tvetl/pkg/profile"
	"github.com/wdm0006/tvetl/pkg/store"
	"github.com/wdm0006/tvetl/pkg/tvmaze"
)

type Runner struct {
	cfg     *config.Config
	fetcher tvmaze.Fetcher
	logger  *zap.Logger
}

// NewRunner uses a TVMaze client built from cfg.API when fetcher is nil.
func NewRunner(cfg *config.Config, fetcher tvmaze.Fetcher, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = tvmaze.NewClient(cfg.API, logger)
	}
	return &Runner{cfg: cfg, fetcher: fetcher, logger: logger}
}

// Summary reports what a full run produced.
type Summary struct {
	Records   int
	Rows      int
	Columns   int
	Inserted  store.Result
	Parquet   string
	Profile   string
	SkippedPQ bool
}

// Collect fetches the configured date range and persists the daily files.
func (r *Runner) Collect(ctx context.Context) ([]jsonio.Record, error) {
	start, end, err := r.cfg.Collect.Range()
	if err != nil {
		return nil, err
	}
	c := tvmaze.NewCollector(r.fetcher, r.cfg.Collect.DataDir, r.logger)
	return c.Collect(ctx, start, end)
}

// Load flattens the persisted daily files.
func (r *Runner) Load() (*j.Frame, error) {
	f, err := jsonio.LoadDir(r.cfg.Collect.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.cfg.Collect.DataDir, err)
	}
	r.logger.Info("loaded schedule files", zap.Int("rows", f.Rows()), zap.Int("cols", f.Cols()))
	return f, nil
}

// Profile writes the column profile of f to the configured path and logs the
// text report at debug level.
func (r *Runner) Profile(f *j.Frame) error {
	p := profile.Collect(f, r.cfg.Profile.TopK)
	r.logger.Debug("data profile\n" + p.Text())
	if r.cfg.Profile.Path == "" {
		return nil
	}
	if err := p.WriteJSON(r.cfg.Profile.Path); err != nil {
		return err
	}
	r.logger.Info("profile written", zap.String("path", r.cfg.Profile.Path))
	return nil
}

func (r *Runner) Clean(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	return cleaning.NewCleaner(r.cfg.Cleaning, r.logger).Clean(ctx, f)
}

// Sink writes f to the Parquet file and the database. A Frame without
// columns has no Parquet form and only reaches the database.
func (r *Runner) Sink(ctx context.Context, f *j.Frame) (store.Result, bool, error) {
	skipped := false
	if err := parquetio.WriteAll(r.cfg.Sink.ParquetPath, f); err != nil {
		if !errors.Is(err, parquetio.ErrNoColumns) {
			return store.Result{}, false, fmt.Errorf("write parquet: %w", err)
		}
		r.logger.Warn("nothing to write to parquet", zap.String("path", r.cfg.Sink.ParquetPath))
		skipped = true
	} else {
		r.logger.Info("parquet written", zap.String("path", r.cfg.Sink.ParquetPath), zap.Int("rows", f.Rows()))
	}

	s, err := store.Open(ctx, r.cfg.Database, r.cfg.Sink, r.logger)
	if err != nil {
		return store.Result{}, skipped, err
	}
	defer func() { _ = s.Close() }()
	res, err := s.Insert(ctx, f)
	if err != nil {
		return res, skipped, fmt.Errorf("insert: %w", err)
	}
	return res, skipped, nil
}

// Run chains collection, loading of the persisted files, profiling, cleaning
// and both sinks.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	records, err := r.Collect(ctx)
	if err != nil {
		return sum, err
	}
	sum.Records = len(records)

	raw, err := r.Load()
	if err != nil {
		return sum, err
	}
	if err := r.Profile(raw); err != nil {
		return sum, err
	}
	sum.Profile = r.cfg.Profile.Path

	cleaned, err := r.Clean(ctx, raw)
	if err != nil {
		return sum, err
	}
	sum.Rows, sum.Columns = cleaned.Rows(), cleaned.Cols()

	res, skipped, err := r.Sink(ctx, cleaned)
	sum.Inserted, sum.SkippedPQ = res, skipped
	if !skipped {
		sum.Parquet = r.cfg.Sink.ParquetPath
	}
	return sum, err
}
