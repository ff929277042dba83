package parquetio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

const readBatch = 1024

type Reader struct {
	file   *os.File
	reader *parquet.Reader
	schema j.Schema
}

// OpenReader opens a Parquet file and derives the Frame schema from the file
// schema. Column names recorded by WriteAll are restored.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	schema := frameSchema(pf)
	return &Reader{file: f, reader: parquet.NewReader(f), schema: schema}, nil
}

func frameSchema(pf *parquet.File) j.Schema {
	paths := pf.Schema().Columns()
	var original []string
	if v, ok := pf.Lookup(ColumnsMetaKey); ok {
		if err := json.Unmarshal([]byte(v), &original); err != nil || len(original) != len(paths) {
			original = nil
		}
	}
	s := j.Schema{Columns: make([]j.ColumnSchema, len(paths))}
	for i, path := range paths {
		name := path[len(path)-1]
		if original != nil {
			name = original[i]
		}
		kind := j.KindString
		if leaf, ok := pf.Schema().Lookup(path...); ok {
			kind = kindOf(leaf.Node.Type().Kind())
		}
		s.Columns[i] = j.ColumnSchema{Name: name, Type: kind, Nullable: true}
	}
	return s
}

func kindOf(k parquet.Kind) j.Kind {
	switch k {
	case parquet.Boolean:
		return j.KindBool
	case parquet.Int32, parquet.Int64:
		return j.KindInt
	case parquet.Float, parquet.Double:
		return j.KindFloat
	default:
		return j.KindString
	}
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() j.Schema { return r.schema }

// ReadAll reads every remaining row into a Frame.
func (r *Reader) ReadAll() (*j.Frame, error) {
	f := j.NewFrame(r.schema)
	buf := make([]parquet.Row, readBatch)
	for {
		n, err := r.reader.ReadRows(buf)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			if err := setRow(f, f.Rows()-1, buf[i]); err != nil {
				return nil, err
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

// ReadFile opens path, reads every row and closes it.
func ReadFile(path string) (*j.Frame, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}

func setRow(f *j.Frame, row int, values parquet.Row) error {
	cols := f.Columns()
	for _, v := range values {
		ci := v.Column()
		if v.IsNull() || ci < 0 || ci >= len(cols) {
			continue
		}
		var cell any
		switch v.Kind() {
		case parquet.Boolean:
			cell = v.Boolean()
		case parquet.Int32:
			cell = int64(v.Int32())
		case parquet.Int64:
			cell = v.Int64()
		case parquet.Float:
			cell = float64(v.Float())
		case parquet.Double:
			cell = v.Double()
		default:
			cell = string(v.ByteArray())
		}
		if err := f.SetCell(row, cols[ci].Name(), cell); err != nil {
			return err
		}
	}
	return nil
}
