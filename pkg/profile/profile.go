// Package profile computes per-column statistics of a Frame and renders them
// as a text table or JSON.
package profile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wdm0006/tvetl/pkg/io/ioutils"
	j "github.com/wdm0006/tvetl/pkg/janitor"
)

type NumStats struct {
	Count int     `json:"count"`
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
}

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// StringStats covers string, time and list columns; list cells are counted by
// their JSON text.
type StringStats struct {
	Count    int          `json:"count"`
	Nulls    int          `json:"nulls"`
	Distinct int          `json:"distinct"`
	Top      []ValueCount `json:"top,omitempty"`
	freqs    map[string]int
}

type ColumnProfile struct {
	Name string       `json:"name"`
	Kind string       `json:"kind"`
	Num  *NumStats    `json:"num,omitempty"`
	Bool *BoolStats   `json:"bool,omitempty"`
	Str  *StringStats `json:"str,omitempty"`
}

type Profile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// Collect profiles every column of f, keeping the topK most frequent values
// of non-numeric columns.
func Collect(f *j.Frame, topK int) Profile {
	p := Profile{Rows: f.Rows(), Columns: make([]ColumnProfile, 0, f.Cols())}
	for _, col := range f.Columns() {
		cp := ColumnProfile{Name: col.Name(), Kind: col.Kind().String()}
		switch col.Kind() {
		case j.KindFloat, j.KindInt:
			cp.Num = numStats(col)
		case j.KindBool:
			cp.Bool = boolStats(col)
		default:
			cp.Str = stringStats(col, topK)
		}
		p.Columns = append(p.Columns, cp)
	}
	return p
}

func numStats(col j.Column) *NumStats {
	s := &NumStats{}
	for i := 0; i < col.Len(); i++ {
		var v float64
		switch x := col.Value(i).(type) {
		case nil:
			s.Nulls++
			continue
		case int64:
			v = float64(x)
		case float64:
			v = x
		}
		if s.Count == 0 || v < s.Min {
			s.Min = v
		}
		if s.Count == 0 || v > s.Max {
			s.Max = v
		}
		s.Count++
		s.Sum += v
	}
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

func boolStats(col j.Column) *BoolStats {
	s := &BoolStats{}
	for i := 0; i < col.Len(); i++ {
		switch col.Value(i) {
		case nil:
			s.Nulls++
		case true:
			s.Count++
			s.True++
		default:
			s.Count++
			s.False++
		}
	}
	return s
}

func stringStats(col j.Column, topK int) *StringStats {
	s := &StringStats{freqs: map[string]int{}}
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v == nil {
			s.Nulls++
			continue
		}
		s.Count++
		s.freqs[j.FormatValue(v)]++
	}
	s.Distinct = len(s.freqs)
	arr := make([]ValueCount, 0, len(s.freqs))
	for k, v := range s.freqs {
		arr = append(arr, ValueCount{Value: k, Count: v})
	}
	sort.Slice(arr, func(a, b int) bool {
		if arr[a].Count != arr[b].Count {
			return arr[a].Count > arr[b].Count
		}
		return arr[a].Value < arr[b].Value
	})
	if topK > 0 && topK < len(arr) {
		arr = arr[:topK]
	}
	if topK > 0 {
		s.Top = arr
	}
	return s
}

func (p Profile) nulls(cp ColumnProfile) int {
	switch {
	case cp.Num != nil:
		return cp.Num.Nulls
	case cp.Bool != nil:
		return cp.Bool.Nulls
	case cp.Str != nil:
		return cp.Str.Nulls
	}
	return 0
}

// Text renders the profile as a table, one line per column.
func (p Profile) Text() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("Profile: %d rows, %d columns", p.Rows, len(p.Columns)))
	tw.AppendHeader(table.Row{"Column", "Kind", "Nulls", "Null %", "Summary"})
	for _, cp := range p.Columns {
		nulls := p.nulls(cp)
		pct := 0.0
		if p.Rows > 0 {
			pct = 100 * float64(nulls) / float64(p.Rows)
		}
		tw.AppendRow(table.Row{cp.Name, cp.Kind, nulls, fmt.Sprintf("%.1f", pct), summary(cp)})
	}
	return tw.Render()
}

func summary(cp ColumnProfile) string {
	switch {
	case cp.Num != nil:
		return fmt.Sprintf("min=%.6g max=%.6g mean=%.6g", cp.Num.Min, cp.Num.Max, cp.Num.Mean)
	case cp.Bool != nil:
		return fmt.Sprintf("true=%d false=%d", cp.Bool.True, cp.Bool.False)
	case cp.Str != nil:
		parts := make([]string, 0, len(cp.Str.Top))
		for _, vc := range cp.Str.Top {
			parts = append(parts, fmt.Sprintf("%s (%d)", truncate(vc.Value, 24), vc.Count))
		}
		return fmt.Sprintf("distinct=%d %s", cp.Str.Distinct, strings.Join(parts, ", "))
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// WriteJSON writes the profile to path, creating parent directories.
func (p Profile) WriteJSON(path string) error {
	w, err := ioutils.CreateMaybeCompressed(path)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", path, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		_ = w.Close()
		return fmt.Errorf("encode profile: %w", err)
	}
	return w.Close()
}
