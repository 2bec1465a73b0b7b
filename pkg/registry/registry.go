// Package registry catalogs the node kinds a score may reference and lints
// scores against that catalog.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/dukex/nfgrapher/pkg/typed"
	"github.com/xeipuuv/gojsonschema"
)

type entry struct {
	spec   typed.KindSpec
	schema *gojsonschema.Schema
}

type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	kinds  map[string]*entry
}

// NewRegistry returns an empty catalog. A nil logger means slog.Default.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	return &Registry{
		logger: log,
		kinds:  make(map[string]*entry),
	}
}

// RegisterKind adds spec to the catalog, replacing any entry for the same kind.
func (r *Registry) RegisterKind(spec typed.KindSpec) error {
	if spec.Kind == "" {
		return fmt.Errorf("registering kind: empty kind identifier")
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(ConfigSchema(spec)))
	if err != nil {
		return fmt.Errorf("compiling config schema for %s: %w", spec.Kind, err)
	}

	r.mu.Lock()
	r.kinds[spec.Kind] = &entry{spec: spec, schema: schema}
	r.mu.Unlock()

	r.logger.Debug("Registered node kind", slog.String("kind", spec.Kind))

	return nil
}

// Kind returns the catalog entry of kind.
func (r *Registry) Kind(kind string) (typed.KindSpec, bool) {
	e, ok := r.lookup(kind)
	if !ok {
		return typed.KindSpec{}, false
	}

	return e.spec, true
}

// Kinds returns every registered kind ordered by identifier.
func (r *Registry) Kinds() []typed.KindSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]typed.KindSpec, 0, len(r.kinds))
	for _, e := range r.kinds {
		specs = append(specs, e.spec)
	}

	slices.SortFunc(specs, func(a, b typed.KindSpec) int { return strings.Compare(a.Kind, b.Kind) })

	return specs
}

// Schema returns the JSON schema describing the config of kind.
func (r *Registry) Schema(kind string) (map[string]any, bool) {
	e, ok := r.lookup(kind)
	if !ok {
		return nil, false
	}

	return ConfigSchema(e.spec), true
}

func (r *Registry) lookup(kind string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.kinds[kind]

	return e, ok
}
