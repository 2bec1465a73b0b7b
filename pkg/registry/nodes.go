package registry

import (
	"log/slog"

	"github.com/dukex/nfgrapher/pkg/typed"
)

// RegisterDefaultNodes registers every built-in node kind with the registry.
func (r *Registry) RegisterDefaultNodes() {
	for _, spec := range typed.Kinds() {
		if err := r.RegisterKind(spec); err != nil {
			// Built-in specs always compile; a failure here is a programming error.
			r.logger.Error("Failed to register built-in kind", slog.String("kind", spec.Kind), slog.Any("error", err))
		}
	}
}
