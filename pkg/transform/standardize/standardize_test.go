package standardize

import (
	"context"
	j "github.com/wdm0006/tvetl/pkg/janitor"
	"testing"
)

func TestJoinListThenMapTokens(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "days", Type: j.KindList, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("days")
	c := col.(*j.ListColumn)
	c.Set(0, []any{"Monday"})
	c.Set(1, []any{"Saturday", "Sunday"})
	c.Set(2, []any{})
	// row 3 null

	tf1 := &JoinList{Column: "days"}
	if _, err := tf1.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ = f.ColumnByName("days")
	sc, ok := col.(*j.StringColumn)
	if !ok {
		t.Fatalf("expected string column, got %T", col)
	}
	v1, _ := sc.Get(1)
	if v1 != "Saturday, Sunday" {
		t.Fatalf("join failed, got %q", v1)
	}
	v3, ok := sc.Get(3)
	if !ok || v3 != "" {
		t.Fatalf("null should become empty string, got %q (ok=%v)", v3, ok)
	}

	tf2 := &MapTokens{Column: "days", Map: Weekdays}
	if _, err := tf2.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	v0, _ := sc.Get(0)
	v1, _ = sc.Get(1)
	v2, _ := sc.Get(2)
	if v0 != "1" || v1 != "6, 7" || v2 != "" {
		t.Fatalf("map tokens failed, got %q %q %q", v0, v1, v2)
	}
}

func TestJoinListScalarsAndUnknownTokens(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "network", Type: j.KindInt, Nullable: true}, {Name: "days", Type: j.KindString, Nullable: true}}}
	f := j.NewFrame(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "network", int64(7))
	_ = f.SetCell(0, "days", "Funday, Friday")

	if _, err := (&JoinList{Column: "network"}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v := f.Value(0, "network"); v != "7" {
		t.Fatalf("scalar not stringified, got %#v", v)
	}
	if _, err := (&MapTokens{Column: "days", Map: Weekdays}).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v := f.Value(0, "days"); v != "Funday, 5" {
		t.Fatalf("unknown token should pass through, got %q", v)
	}

	same, err := (&JoinList{Column: "genres"}).Apply(context.Background(), f)
	if err != nil || same != f {
		t.Fatal("absent column should be a no-op")
	}
}
