package janitor

import (
	"context"
	"testing"
)

func makeFrame(rows int) *Frame {
	s := Schema{Columns: []ColumnSchema{{Name: "runtime", Type: KindFloat, Nullable: true}, {Name: "season", Type: KindInt, Nullable: true}, {Name: "type", Type: KindString, Nullable: true}}}
	f := NewFrame(s)
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "runtime", float64(i%100))
		_ = f.SetCell(i, "season", int64(i%10))
		_ = f.SetCell(i, "type", "regular")
	}
	return f
}

type noopTransform struct{}

func (n *noopTransform) Name() string { return "noop" }

func (n *noopTransform) Apply(ctx context.Context, f *Frame) (*Frame, error) { return f, nil }

func BenchmarkPipeline(b *testing.B) {
	f := makeFrame(100000)
	p := NewPipeline().Add(&noopTransform{}).Add(&noopTransform{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(context.Background(), f)
	}
}

func BenchmarkRowKey(b *testing.B) {
	f := makeFrame(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for r := 0; r < f.Rows(); r++ {
			_ = f.RowKey(r)
		}
	}
}
