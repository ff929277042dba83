package standardize

import (
	"context"
	"strings"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// JoinList turns Column into a string column: list cells become their
// elements joined by Sep, other non-null cells their text form, and nulls the
// empty string.
type JoinList struct {
	Column string
	Sep    string
}

func (t *JoinList) Name() string { return "join_list" }

func (t *JoinList) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	sep := t.Sep
	if sep == "" {
		sep = ", "
	}
	out := j.NewStringColumn(t.Column, col.Len())
	for i := 0; i < col.Len(); i++ {
		switch v := col.Value(i).(type) {
		case nil:
			out.Set(i, "")
		case []any:
			parts := make([]string, len(v))
			for k, e := range v {
				parts[k] = j.FormatValue(e)
			}
			out.Set(i, strings.Join(parts, sep))
		default:
			out.Set(i, j.FormatValue(v))
		}
	}
	if err := f.ReplaceColumn(out); err != nil {
		return f, err
	}
	return f, nil
}
