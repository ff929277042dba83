package janitor

import (
	"context"
	"fmt"
)

// Transform is a mutation or validation applied to a Frame. A transform whose
// target column is absent returns the frame unchanged.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
	skip  map[string]bool
}

func NewPipeline() *Pipeline { return &Pipeline{skip: map[string]bool{}} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Skip disables every step with the given name.
func (p *Pipeline) Skip(names ...string) *Pipeline {
	for _, n := range names {
		p.skip[n] = true
	}
	return p
}

// Names lists the steps that Run will apply, in order.
func (p *Pipeline) Names() []string {
	out := make([]string, 0, len(p.steps))
	for _, t := range p.steps {
		if !p.skip[t.Name()] {
			out = append(out, t.Name())
		}
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	var err error
	cur := f
	for _, t := range p.steps {
		if p.skip[t.Name()] {
			continue
		}
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return cur, nil
}
