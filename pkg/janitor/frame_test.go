package janitor

import (
	"context"
	"errors"
	"testing"
)

func TestDropAndReplaceColumn(t *testing.T) {
	f := makeFrame(3)
	if !f.DropColumn("season") {
		t.Fatal("expected season to be dropped")
	}
	if f.DropColumn("season") {
		t.Fatal("second drop should report absence")
	}
	if f.Cols() != 2 {
		t.Fatalf("expected 2 columns, got %d", f.Cols())
	}
	if _, ok := f.ColumnByName("type"); !ok {
		t.Fatal("index not rebuilt after drop")
	}

	sc := NewStringColumn("runtime", 3)
	sc.Set(0, "sixty")
	if err := f.ReplaceColumn(sc); err != nil {
		t.Fatal(err)
	}
	if f.Schema().Columns[0].Type != KindString {
		t.Fatalf("schema kind not updated, got %v", f.Schema().Columns[0].Type)
	}
	if v := f.Value(0, "runtime"); v != "sixty" {
		t.Fatalf("got %v", v)
	}
	if v := f.Value(1, "runtime"); v != nil {
		t.Fatalf("expected null, got %v", v)
	}
	if !sc.IsNull(2) || sc.Len() != 3 {
		t.Fatal("sized column should start all null")
	}
	if err := f.ReplaceColumn(NewStringColumn("runtime", 1)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestAddColumnAndFilter(t *testing.T) {
	f := makeFrame(4)
	lc := NewListColumn("genres", 4)
	lc.Set(1, []any{"Drama"})
	if err := f.AddColumn(lc); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn(NewBoolColumn("genres", 4)); err == nil {
		t.Fatal("expected duplicate column error")
	}

	out := f.Filter(func(row int) bool { return row%2 == 1 })
	if out.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Rows())
	}
	g, ok := out.Value(0, "genres").([]any)
	if !ok || len(g) != 1 || g[0] != "Drama" {
		t.Fatalf("list cell not carried over: %#v", out.Value(0, "genres"))
	}
	if out.Value(1, "genres") != nil {
		t.Fatal("null list cell should stay null")
	}
	if f.Rows() != 4 {
		t.Fatal("filter must not mutate the source frame")
	}
}

func TestRowKeyAndNullCount(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{{Name: "a", Type: KindInt, Nullable: true}, {Name: "b", Type: KindString, Nullable: true}}}
	f := NewFrame(s)
	for i := 0; i < 3; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "a", int64(1))
	_ = f.SetCell(1, "a", int64(1))
	_ = f.SetCell(2, "a", int64(1))
	_ = f.SetCell(2, "b", "")

	if f.RowKey(0) != f.RowKey(1) {
		t.Fatal("rows with equal cells should share a key")
	}
	if f.RowKey(0) == f.RowKey(2) {
		t.Fatal("null and empty string must not collide")
	}
	if n := f.NullCount(0); n != 1 {
		t.Fatalf("expected 1 null, got %d", n)
	}
}

type failing struct{}

func (failing) Name() string { return "failing" }
func (failing) Apply(ctx context.Context, f *Frame) (*Frame, error) {
	return nil, errors.New("boom")
}

func TestPipelineSkipAndErrors(t *testing.T) {
	p := NewPipeline().Add(&noopTransform{}).Add(failing{})
	if _, err := p.Run(context.Background(), makeFrame(1)); err == nil {
		t.Fatal("expected error from failing step")
	}
	p.Skip("failing")
	if got := p.Names(); len(got) != 1 || got[0] != "noop" {
		t.Fatalf("unexpected names %v", got)
	}
	if _, err := p.Run(context.Background(), makeFrame(1)); err != nil {
		t.Fatal(err)
	}
}

func TestSizedColumnsStartNull(t *testing.T) {
	cols := []Column{
		NewBoolColumn("b", 2),
		NewIntColumn("i", 2),
		NewFloatColumn("f", 2),
		NewStringColumn("s", 2),
		NewTimeColumn("t", 2),
		NewListColumn("l", 2),
	}
	for _, c := range cols {
		for i := 0; i < c.Len(); i++ {
			if !c.IsNull(i) || c.Value(i) != nil {
				t.Fatalf("%s[%d] should be null", c.Name(), i)
			}
		}
	}
	ic := NewIntColumn("i", 1)
	ic.Set(0, 0)
	if v, ok := ic.Get(0); !ok || v != 0 {
		t.Fatal("set zero value should not be null")
	}
}
