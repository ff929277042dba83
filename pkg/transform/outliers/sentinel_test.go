package outliers

import (
	"context"
	"testing"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

func TestDropValue(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "season", Type: j.KindInt, Nullable: true}, {Name: "name", Type: j.KindString, Nullable: true}}}
	f := j.NewFrame(s)
	seasons := []any{int64(1), int64(2024), nil, int64(2023), int64(2024)}
	for i, v := range seasons {
		f.AppendNullRow()
		_ = f.SetCell(i, "season", v)
		_ = f.SetCell(i, "name", "ep")
	}

	out, err := (&DropValue{Column: "season", Value: 2024}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", out.Rows())
	}
	for i := 0; i < out.Rows(); i++ {
		if out.Value(i, "season") == int64(2024) {
			t.Fatalf("sentinel survived at row %d", i)
		}
	}
	if out.Value(1, "season") != nil {
		t.Fatal("null season should be kept")
	}
}

func TestDropValueFloatAndMissing(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "season", Type: j.KindFloat, Nullable: true}}}
	f := j.NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "season", 2024.0)
	f.AppendNullRow()
	_ = f.SetCell(1, "season", 1.5)

	out, err := (&DropValue{Column: "season", Value: 2024}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 1 {
		t.Fatalf("expected 1 row, got %d", out.Rows())
	}

	same, err := (&DropValue{Column: "number", Value: 2024}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if same != f {
		t.Fatal("absent column should be a no-op")
	}
}
