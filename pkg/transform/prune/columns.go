package prune

import (
	"context"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// DropColumns removes every listed column that is present.
type DropColumns struct{ Columns []string }

func (t *DropColumns) Name() string { return "drop_columns" }

func (t *DropColumns) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	for _, name := range t.Columns {
		f.DropColumn(name)
	}
	return f, nil
}
