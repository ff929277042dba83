package standardize

import (
	"context"
	"strings"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// Weekdays maps English day names to their ISO-8601 ordinal.
var Weekdays = map[string]string{
	"Monday":    "1",
	"Tuesday":   "2",
	"Wednesday": "3",
	"Thursday":  "4",
	"Friday":    "5",
	"Saturday":  "6",
	"Sunday":    "7",
}

// MapTokens splits each string cell on Split, trims and maps every token
// through Map (unknown tokens pass through) and joins them back with Join.
// Null cells become the empty string.
type MapTokens struct {
	Column string
	Map    map[string]string
	Split  string
	Join   string
}

func (t *MapTokens) Name() string { return "map_tokens" }

func (t *MapTokens) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*j.StringColumn)
	if !ok {
		return f, nil
	}
	split, join := t.Split, t.Join
	if split == "" {
		split = ","
	}
	if join == "" {
		join = ", "
	}
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			c.Set(i, "")
			continue
		}
		tokens := strings.Split(v, split)
		for k, tok := range tokens {
			tok = strings.TrimSpace(tok)
			if nv, ok := t.Map[tok]; ok {
				tok = nv
			}
			tokens[k] = tok
		}
		c.Set(i, strings.Join(tokens, join))
	}
	return f, nil
}
