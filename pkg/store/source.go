package store

import (
	"strings"

	j "github.com/wdm0006/tvetl/pkg/janitor"
)

type indicator struct {
	col   *j.BoolColumn
	value string
}

// rowSource resolves dotted source paths against a Frame. A path whose column
// was one-hot encoded away is recovered from its "<path>_<value>" indicators.
type rowSource struct {
	f          *j.Frame
	indicators map[string][]indicator
}

func newRowSource(f *j.Frame) *rowSource {
	return &rowSource{f: f, indicators: map[string][]indicator{}}
}

func (s *rowSource) value(row int, path string) any {
	if path == "" {
		return nil
	}
	if col, ok := s.f.ColumnByName(path); ok {
		return col.Value(row)
	}
	for _, ind := range s.indicatorsFor(path) {
		if v, ok := ind.col.Get(row); ok && v {
			return ind.value
		}
	}
	return nil
}

func (s *rowSource) indicatorsFor(path string) []indicator {
	if inds, ok := s.indicators[path]; ok {
		return inds
	}
	prefix := path + "_"
	var inds []indicator
	for _, c := range s.f.Columns() {
		bc, ok := c.(*j.BoolColumn)
		if !ok || !strings.HasPrefix(c.Name(), prefix) {
			continue
		}
		inds = append(inds, indicator{col: bc, value: strings.TrimPrefix(c.Name(), prefix)})
	}
	s.indicators[path] = inds
	return inds
}
