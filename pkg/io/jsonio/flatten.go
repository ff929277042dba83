// Package jsonio reads and writes the per-day JSON files produced by the
// collector and flattens records into a janitor Frame.
package jsonio

import (
	"encoding/json"
	"math"
	"sort"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// Record is one decoded JSON object.
type Record = map[string]any

const pathSep = "."

// Flatten turns records into a Frame with one row per record. Nested objects
// become dotted column names, in first-seen order; lists and scalars are
// leaves. A path missing from a record is null in that row.
func Flatten(records []Record) *j.Frame {
	var order []string
	seen := map[string]bool{}
	rows := make([]map[string]any, len(records))
	for i, rec := range records {
		flat := map[string]any{}
		flattenInto(flat, "", rec, func(path string) {
			if !seen[path] {
				seen[path] = true
				order = append(order, path)
			}
		})
		rows[i] = flat
	}

	schema := j.Schema{Columns: make([]j.ColumnSchema, len(order))}
	for i, name := range order {
		schema.Columns[i] = j.ColumnSchema{Name: name, Type: inferKind(rows, name), Nullable: true}
	}
	f := j.NewFrame(schema)
	for _, flat := range rows {
		f.AppendNullRow()
		row := f.Rows() - 1
		for _, cs := range schema.Columns {
			v, ok := flat[cs.Name]
			if !ok || v == nil {
				continue
			}
			_ = f.SetCell(row, cs.Name, coerce(v, cs.Type))
		}
	}
	return f
}

// flattenInto walks obj depth first, visiting keys in sorted order so that the
// resulting column order does not depend on map iteration.
func flattenInto(dst map[string]any, prefix string, obj map[string]any, see func(string)) {
	for _, k := range orderedKeys(obj) {
		path := k
		if prefix != "" {
			path = prefix + pathSep + k
		}
		switch v := obj[k].(type) {
		case map[string]any:
			flattenInto(dst, path, v, see)
		default:
			dst[path] = v
			see(path)
		}
	}
}

// maxExactInt bounds integral floats that convert to int64 without overflow.
const maxExactInt = 1 << 63

func inferKind(rows []map[string]any, name string) j.Kind {
	nInt, nFloat, nBool, nList, nOther, nonNull := 0, 0, 0, 0, 0, 0
	for _, flat := range rows {
		v, ok := flat[name]
		if !ok || v == nil {
			continue
		}
		nonNull++
		switch t := v.(type) {
		case float64:
			if t == math.Trunc(t) && math.Abs(t) < maxExactInt {
				nInt++
			} else {
				nFloat++
			}
		case json.Number:
			if _, err := t.Int64(); err == nil {
				nInt++
			} else {
				nFloat++
			}
		case int, int64:
			nInt++
		case bool:
			nBool++
		case []any:
			nList++
		default:
			nOther++
		}
	}
	switch {
	case nonNull == 0:
		return j.KindString
	case nInt == nonNull:
		return j.KindInt
	case nInt+nFloat == nonNull:
		return j.KindFloat
	case nBool == nonNull:
		return j.KindBool
	case nList == nonNull:
		return j.KindList
	default:
		return j.KindString
	}
}

func coerce(v any, k j.Kind) any {
	switch k {
	case j.KindInt:
		switch t := v.(type) {
		case float64:
			return int64(t)
		case json.Number:
			n, _ := t.Int64()
			return n
		case int:
			return int64(t)
		}
	case j.KindFloat:
		switch t := v.(type) {
		case float64:
			return t
		case json.Number:
			x, _ := t.Float64()
			return x
		case int:
			return float64(t)
		case int64:
			return float64(t)
		}
	case j.KindString:
		if s, ok := v.(string); ok {
			return s
		}
		return j.FormatValue(v)
	}
	return v
}

func orderedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
