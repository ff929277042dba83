package impute

import (
	"context"
	"testing"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

func makeFloatFrame() *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "_embedded.show.averageRuntime", Type: j.KindFloat, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("_embedded.show.averageRuntime")
	c := col.(*j.FloatColumn)
	c.Set(0, 30.0)
	c.Set(2, 45.0)
	// rows 1,3,4 remain null
	return f
}

func TestMedianFloat(t *testing.T) {
	f := makeFloatFrame()
	tform := &Median{Column: "_embedded.show.averageRuntime"}
	out, err := tform.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("_embedded.show.averageRuntime")
	c := col.(*j.FloatColumn)
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			t.Fatalf("median imputer left null at row %d", i)
		}
	}
	if v, _ := c.Get(1); v != 37.5 {
		t.Fatalf("expected 37.5, got %v", v)
	}
}

func TestMedianInt(t *testing.T) {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "runtime", Type: j.KindInt, Nullable: true}}}
	f := j.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "runtime", int64(60))
	_ = f.SetCell(1, "runtime", int64(30))
	_ = f.SetCell(2, "runtime", int64(25))

	out, err := (&Median{Column: "runtime"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if v := out.Value(3, "runtime"); v != int64(30) {
		t.Fatalf("expected 30, got %v", v)
	}
}

func intFrame(vals ...any) *j.Frame {
	s := j.Schema{Columns: []j.ColumnSchema{{Name: "runtime", Type: j.KindInt, Nullable: true}}}
	f := j.NewFrame(s)
	for i, v := range vals {
		f.AppendNullRow()
		if v != nil {
			_ = f.SetCell(i, "runtime", v)
		}
	}
	return f
}

func TestMedianIntEvenCount(t *testing.T) {
	out, err := (&Median{Column: "runtime"}).Apply(context.Background(), intFrame(int64(30), int64(60), nil))
	if err != nil {
		t.Fatal(err)
	}
	if v := out.Value(2, "runtime"); v != int64(45) {
		t.Fatalf("expected int 45, got %#v", v)
	}
}

func TestMedianIntHalfwayPromotesToFloat(t *testing.T) {
	out, err := (&Median{Column: "runtime"}).Apply(context.Background(), intFrame(int64(30), nil, int64(61)))
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("runtime")
	if col.Kind() != j.KindFloat || out.Schema().Columns[0].Type != j.KindFloat {
		t.Fatalf("expected float column, got %v", col.Kind())
	}
	if v := out.Value(1, "runtime"); v != 45.5 {
		t.Fatalf("expected 45.5, got %#v", v)
	}
	if v := out.Value(0, "runtime"); v != 30.0 {
		t.Fatalf("existing values should carry over, got %#v", v)
	}
}

func TestMedianIntNegative(t *testing.T) {
	out, err := (&Median{Column: "runtime"}).Apply(context.Background(), intFrame(int64(-7), int64(-3), nil))
	if err != nil {
		t.Fatal(err)
	}
	if v := out.Value(2, "runtime"); v != int64(-5) {
		t.Fatalf("expected -5, got %#v", v)
	}
}

func TestMedianMissingColumn(t *testing.T) {
	f := makeFloatFrame()
	out, err := (&Median{Column: "runtime"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out != f {
		t.Fatal("expected frame to pass through unchanged")
	}
}
