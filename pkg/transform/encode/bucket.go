package encode

import (
	"context"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// BucketRare replaces every value of a string Column that occurs MaxCount
// times or fewer with Label. Nulls are not counted and stay null.
type BucketRare struct {
	Column   string
	MaxCount int
	Label    string
}

func (t *BucketRare) Name() string { return "bucket_rare" }

func (t *BucketRare) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.StringColumn)
	if !ok {
		return f, nil
	}
	label := t.Label
	if label == "" {
		label = "Other"
	}
	counts := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			counts[v]++
		}
	}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok && counts[v] <= t.MaxCount {
			c.Set(i, label)
		}
	}
	return f, nil
}
