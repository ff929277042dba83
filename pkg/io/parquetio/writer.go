// Package parquetio writes janitor Frames to snappy-compressed Parquet files
// and reads them back.
package parquetio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/parquet"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/tvetl/pkg/io/ioutils"
	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// ColumnsMetaKey is the footer key holding the JSON array of original column
// names, in file column order.
const ColumnsMetaKey = "tvetl.columns"

const writerParallelism = 4

// ErrNoColumns is returned by WriteAll for a Frame without columns, which has
// no Parquet representation.
var ErrNoColumns = errors.New("parquetio: frame has no columns")

// SanitizeName maps a column name onto [A-Za-z0-9_]: "." becomes "__" and
// every other disallowed byte becomes "_".
func SanitizeName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.':
			b.WriteString("__")
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// fileNames returns the sanitized name of every column, made unique under the
// writer's internal field naming by suffixing a counter.
func fileNames(s j.Schema) []string {
	used := map[string]bool{}
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		base := SanitizeName(cs.Name)
		name := base
		for n := 2; used[common.StringToVariableName(name)]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		used[common.StringToVariableName(name)] = true
		out[i] = name
	}
	return out
}

func parquetSchemaJSON(s j.Schema, names []string) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for i, cs := range s.Columns {
		tag := "name=" + names[i] + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case j.KindFloat:
			tag += "DOUBLE"
		case j.KindInt:
			tag += "INT64"
		case j.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes f to path with snappy compression. Every column is
// OPTIONAL; time and list cells are written as text.
func WriteAll(path string, f *j.Frame) error {
	if f.Cols() == 0 {
		return ErrNoColumns
	}
	if err := ioutils.EnsureDir(path); err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	schema := f.Schema()
	names := fileNames(schema)
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(schema, names), fw, writerParallelism)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	writer.CompressionType = parquet.CompressionCodec_SNAPPY

	original := make([]string, len(schema.Columns))
	for i, cs := range schema.Columns {
		original[i] = cs.Name
	}
	meta, _ := json.Marshal(original)
	writer.Footer.KeyValueMetadata = append(writer.Footer.KeyValueMetadata,
		&parquet.KeyValue{Key: ColumnsMetaKey, Value: stringPtr(string(meta))})

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(names))
		for i, col := range f.Columns() {
			v := col.Value(r)
			if v == nil {
				continue
			}
			switch col.Kind() {
			case j.KindTime, j.KindList:
				rec[names[i]] = j.FormatValue(v)
			default:
				rec[names[i]] = v
			}
		}
		line, err := json.Marshal(rec)
		if err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(line)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	if err := writer.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet finalize: %w", err)
	}
	return fw.Close()
}

func stringPtr(s string) *string { return &s }
