package tvmaze

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/io/jsonio"
)

// Collector drives a Fetcher over an inclusive date range.
type Collector struct {
	fetcher Fetcher
	dataDir string
	logger  *zap.Logger
}

func NewCollector(f Fetcher, dataDir string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{fetcher: f, dataDir: dataDir, logger: logger}
}

// Days lists every day from start to end inclusive; it is empty when end is
// before start.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Collect returns every record in the range, then fetches each day a second
// time and writes it to data_YYYY-MM-DD.json in the data directory. The
// returned records come from the first pass.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) ([]Record, error) {
	days := Days(start, end)
	var all []Record
	for _, d := range days {
		all = append(all, c.fetcher.Fetch(ctx, d)...)
	}
	for _, d := range days {
		day := d.Format(config.DateLayout)
		path := filepath.Join(c.dataDir, jsonio.FileName(day))
		if err := jsonio.WriteRecords(path, c.fetcher.Fetch(ctx, d)); err != nil {
			return nil, fmt.Errorf("persist %s: %w", day, err)
		}
		c.logger.Debug("wrote schedule file", zap.String("path", path))
	}
	c.logger.Info("collection complete",
		zap.Int("days", len(days)),
		zap.Int("records", len(all)),
		zap.String("data_dir", c.dataDir))
	return all, nil
}
