package janitor

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	keyFieldSep = "\x1f"
	keyNull     = "\x00"
)

// RowKey encodes every cell of row into a string such that two rows have the
// same key exactly when all their cells are equal. Nulls compare equal.
func (f *Frame) RowKey(row int) string {
	var b strings.Builder
	for i, c := range f.cols {
		if i > 0 {
			b.WriteString(keyFieldSep)
		}
		if c.IsNull(row) {
			b.WriteString(keyNull)
			continue
		}
		b.WriteString(FormatValue(c.Value(row)))
	}
	return b.String()
}

// FormatValue renders a cell value as text: strings verbatim, numbers in their
// shortest form, lists and objects as JSON. nil renders as "".
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
