package janitor

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	// KindList holds decoded JSON arrays until they are flattened to strings.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Value returns the cell as a plain Go value, or nil when null.
	Value(i int) any
}

// allNull backs the sized column constructors: every cell of a new column
// is null until set.
func allNull(n int) []bool {
	nulls := make([]bool, n)
	for i := range nulls {
		nulls[i] = true
	}
	return nulls
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: allNull(n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *BoolColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: allNull(n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: allNull(n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *FloatColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: allNull(n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: allNull(n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}
func (c *TimeColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

// ListColumn keeps JSON array cells as-is. Elements are whatever the JSON
// decoder produced (string, float64, bool, map[string]any, ...).
type ListColumn struct {
	name  string
	data  [][]any
	nulls []bool
}

func NewListColumn(name string, n int) *ListColumn {
	return &ListColumn{name: name, data: make([][]any, n), nulls: allNull(n)}
}
func (c *ListColumn) Name() string            { return c.name }
func (c *ListColumn) Kind() Kind              { return KindList }
func (c *ListColumn) Len() int                { return len(c.data) }
func (c *ListColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *ListColumn) SetNull(i int)           { c.data[i] = nil; c.nulls[i] = true }
func (c *ListColumn) Get(i int) ([]any, bool) { return c.data[i], !c.nulls[i] }
func (c *ListColumn) Set(i int, v []any)      { c.data[i] = v; c.nulls[i] = false }
func (c *ListColumn) AppendNull()             { c.data = append(c.data, nil); c.nulls = append(c.nulls, true) }
func (c *ListColumn) Append(v []any)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *ListColumn) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

// NewColumn allocates an empty column of the given kind.
func NewColumn(name string, k Kind) (Column, error) {
	switch k {
	case KindBool:
		return NewBoolColumn(name, 0), nil
	case KindInt:
		return NewIntColumn(name, 0), nil
	case KindFloat:
		return NewFloatColumn(name, 0), nil
	case KindString:
		return NewStringColumn(name, 0), nil
	case KindTime:
		return NewTimeColumn(name, 0), nil
	case KindList:
		return NewListColumn(name, 0), nil
	default:
		return nil, fmt.Errorf("invalid column kind %d for %s", k, name)
	}
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	s = Schema{Columns: append([]ColumnSchema(nil), s.Columns...)}
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		col, err := NewColumn(cs.Name, cs.Type)
		if err != nil {
			panic("invalid column kind")
		}
		f.cols[i] = col
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema    { return f.schema }
func (f *Frame) Rows() int         { return f.nrows }
func (f *Frame) Cols() int         { return len(f.cols) }
func (f *Frame) Columns() []Column { return f.cols }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Value returns the cell at row for the named column, or nil when the cell is
// null or the column does not exist.
func (f *Frame) Value(row int, name string) any {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil
	}
	return col.Value(row)
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		case *ListColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// DropColumn removes the named column. It reports whether the column existed.
func (f *Frame) DropColumn(name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	f.schema.Columns = append(f.schema.Columns[:i], f.schema.Columns[i+1:]...)
	f.reindex()
	return true
}

// ReplaceColumn swaps the column with the same name for col, keeping its
// position. The kind may change.
func (f *Frame) ReplaceColumn(col Column) error {
	i, ok := f.index[col.Name()]
	if !ok {
		return fmt.Errorf("unknown column: %s", col.Name())
	}
	if col.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", col.Name(), col.Len(), f.nrows)
	}
	f.cols[i] = col
	f.schema.Columns[i].Type = col.Kind()
	return nil
}

// AddColumn appends col as the last column.
func (f *Frame) AddColumn(col Column) error {
	if _, ok := f.index[col.Name()]; ok {
		return fmt.Errorf("duplicate column: %s", col.Name())
	}
	if len(f.cols) == 0 && f.nrows == 0 {
		f.nrows = col.Len()
	}
	if col.Len() != f.nrows {
		return fmt.Errorf("column %s has %d rows, frame has %d", col.Name(), col.Len(), f.nrows)
	}
	f.cols = append(f.cols, col)
	f.schema.Columns = append(f.schema.Columns, ColumnSchema{Name: col.Name(), Type: col.Kind(), Nullable: true})
	f.index[col.Name()] = len(f.cols) - 1
	return nil
}

// Filter returns a new Frame with the same schema holding only the rows for
// which keep returns true, in their original order.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	s := Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)}
	out := NewFrame(s)
	for r := 0; r < f.nrows; r++ {
		if !keep(r) {
			continue
		}
		out.AppendNullRow()
		row := out.Rows() - 1
		for i, c := range f.cols {
			if v := c.Value(r); v != nil {
				_ = out.SetCell(row, s.Columns[i].Name, v)
			}
		}
	}
	return out
}

// NullCount returns the number of null cells in row.
func (f *Frame) NullCount(row int) int {
	n := 0
	for _, c := range f.cols {
		if c.IsNull(row) {
			n++
		}
	}
	return n
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.Name()] = i
	}
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	switch col := c.(type) {
	case *BoolColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	case *ListColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		l, ok := v.([]any)
		if !ok {
			return fmt.Errorf("column %s expects []any", name)
		}
		col.Set(row, l)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}
