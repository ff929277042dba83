package encode

import (
	"context"
	"fmt"
	"sort"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// OneHot replaces Column with one bool indicator column per distinct value,
// named "<Column>_<value>" and appended in sorted value order. A null source
// cell yields false in every indicator.
type OneHot struct{ Column string }

func (t *OneHot) Name() string { return "one_hot" }

func (t *OneHot) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	cats := map[string]struct{}{}
	vals := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v := j.FormatValue(col.Value(i))
		vals[i] = v
		cats[v] = struct{}{}
	}
	names := make([]string, 0, len(cats))
	for k := range cats {
		names = append(names, k)
	}
	sort.Strings(names)

	f.DropColumn(t.Column)
	for _, cat := range names {
		ind := j.NewBoolColumn(IndicatorName(t.Column, cat), col.Len())
		for i := range vals {
			ind.Set(i, !col.IsNull(i) && vals[i] == cat)
		}
		if err := f.AddColumn(ind); err != nil {
			return f, fmt.Errorf("one_hot %s: %w", t.Column, err)
		}
	}
	return f, nil
}

// IndicatorName is the column name OneHot uses for value of column.
func IndicatorName(column, value string) string { return column + "_" + value }
