package impute

import (
	"context"
	"sort"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// Median fills nulls with the median of the non-null values in Column.
// An int column whose median falls between two integers becomes a float
// column.
type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	switch c := col.(type) {
	case *j.FloatColumn:
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return f, nil
		}
		fillFloat(c, medianFloat(vals))
	case *j.IntColumn:
		vals := make([]int64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if v, ok := c.Get(i); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			return f, nil
		}
		sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
		mid := len(vals) / 2
		if len(vals)%2 == 1 || vals[mid-1] == vals[mid] {
			fillInt(c, vals[mid])
			return f, nil
		}
		lo, hi := vals[mid-1], vals[mid]
		if (hi-lo)%2 == 0 {
			fillInt(c, lo+(hi-lo)/2)
			return f, nil
		}
		fc := toFloat(c)
		fillFloat(fc, float64(lo)+float64(hi-lo)/2)
		if err := f.ReplaceColumn(fc); err != nil {
			return f, err
		}
	}
	return f, nil
}

func fillFloat(c *j.FloatColumn, v float64) {
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, v)
		}
	}
}

func fillInt(c *j.IntColumn, v int64) {
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			c.Set(i, v)
		}
	}
}

func toFloat(c *j.IntColumn) *j.FloatColumn {
	out := j.NewFloatColumn(c.Name(), c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			out.Set(i, float64(v))
		}
	}
	return out
}

func medianFloat(vals []float64) float64 {
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2
	}
	return vals[mid]
}
