package prune

import (
	"context"
	"fmt"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

const ratioEpsilon = 1e-9

// DropSparse removes rows whose share of null cells exceeds MaxNullRatio of
// the frame's current column count.
type DropSparse struct{ MaxNullRatio float64 }

func (t *DropSparse) Name() string { return "drop_sparse" }

func (t *DropSparse) Apply(ctx context.Context, f *j.Frame) (*j.Frame, error) {
	if t.MaxNullRatio < 0 || t.MaxNullRatio > 1 {
		return f, fmt.Errorf("drop_sparse: ratio %v outside [0,1]", t.MaxNullRatio)
	}
	if f.Cols() == 0 {
		return f, nil
	}
	maxNulls := float64(f.Cols())*t.MaxNullRatio + ratioEpsilon
	return f.Filter(func(row int) bool {
		return float64(f.NullCount(row)) <= maxNulls
	}), nil
}
