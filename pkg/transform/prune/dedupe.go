package prune

import (
	"context"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// Dedupe keeps the first of every group of rows that are equal across all
// columns.
type Dedupe struct{}

func (t *Dedupe) Name() string { return "dedupe" }

func (t *Dedupe) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	seen := make(map[string]struct{}, f.Rows())
	return f.Filter(func(row int) bool {
		k := f.RowKey(row)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	}), nil
}
