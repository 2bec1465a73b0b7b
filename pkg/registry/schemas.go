package registry

import (
	"github.com/dukex/nfgrapher/pkg/typecheck"
	"github.com/dukex/nfgrapher/pkg/typed"
)

// ConfigSchema renders the config fields of spec as a draft-07 JSON schema.
// Enumerations are listed as examples only: unrecognised values are reported
// as warnings by Check, not rejected.
func ConfigSchema(spec typed.KindSpec) map[string]any {
	properties := make(map[string]any, len(spec.Fields))
	required := make([]string, 0)

	for _, f := range spec.Fields {
		prop := typeSchema(f.Type)

		if f.Description != "" {
			prop["description"] = f.Description
		}

		if f.Default != nil {
			prop["default"] = f.Default
		}

		if len(f.Enum) > 0 {
			prop["examples"] = f.Enum
		}

		properties[f.Name] = prop

		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"title":      spec.Name,
		"type":       "object",
		"properties": properties,
	}

	if spec.Description != "" {
		schema["description"] = spec.Description
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func typeSchema(kind typecheck.Kind) map[string]any {
	if kind.IsList() {
		return map[string]any{
			"type":  "array",
			"items": typeSchema(kind.Elem()),
		}
	}

	switch kind {
	case typecheck.KindString:
		return map[string]any{"type": "string"}
	case typecheck.KindInt:
		return map[string]any{"type": "integer"}
	case typecheck.KindBool:
		return map[string]any{"type": "boolean"}
	case typecheck.KindTime:
		return map[string]any{"type": "number", "minimum": 0}
	default:
		return map[string]any{"type": "number"}
	}
}
