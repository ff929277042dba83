package outliers

import (
	"context"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// DropValue removes rows whose numeric Column equals Value. It is used for
// sentinel years that mark a record as bogus. Nulls and non-numeric columns
// are left alone.
type DropValue struct {
	Column string
	Value  float64
}

func (t *DropValue) Name() string { return "drop_sentinel" }

func (t *DropValue) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	var match func(i int) bool
	switch c := col.(type) {
	case *j.IntColumn:
		match = func(i int) bool {
			v, ok := c.Get(i)
			return ok && float64(v) == t.Value
		}
	case *j.FloatColumn:
		match = func(i int) bool {
			v, ok := c.Get(i)
			return ok && v == t.Value
		}
	default:
		return f, nil
	}
	return f.Filter(func(i int) bool { return !match(i) }), nil
}
