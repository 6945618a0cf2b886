package render

import (
	"fmt"

	"github.com/Don-calvins/Loan-Automation/internal/ports"
)

// Registry keeps a mapping from format names to renderer implementations.
type Registry struct {
	renderers map[string]ports.Renderer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: map[string]ports.Renderer{}}
}

// Register adds or replaces a renderer implementation.
func (r *Registry) Register(renderer ports.Renderer) {
	if r.renderers == nil {
		r.renderers = map[string]ports.Renderer{}
	}
	r.renderers[renderer.Name()] = renderer
}

// Resolve returns a renderer by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Renderer, error) {
	if renderer, ok := r.renderers[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("report format %s is not registered", name)
}
