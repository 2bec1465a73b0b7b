package registry

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typed"
	"github.com/xeipuuv/gojsonschema"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeMissingGraph        = "missing_graph"
	codeLoweringFailed      = "lowering_failed"
	codeVersionInvalid      = "version_invalid"
	codeVersionIncompatible = "version_incompatible"
	codeVersionNewer        = "version_newer"
	codeDuplicateID         = "duplicate_id"
	codeUnknownKind         = "unknown_kind"
	codeConfigInvalid       = "config_invalid"
	codeUnknownConfig       = "unknown_config"
	codeEnumInvalid         = "enum_value_invalid"
	codeUnknownParam        = "unknown_param"
	codeUnknownCommand      = "unknown_command"
	codeCommandInvalid      = "command_invalid"
	codeDanglingEdge        = "dangling_edge"
	codeSelfConnection      = "self_connection"
	codeUnknownPort         = "unknown_port"
)

// Issue is one finding of Check.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Node     string   `json:"node,omitempty"`
	Edge     string   `json:"edge,omitempty"`
	Field    string   `json:"field,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// Errors returns the issues with error severity.
func (r *Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the issues with warning severity.
func (r *Report) Warnings() []Issue { return r.filter(SeverityWarn) }

func (r *Report) filter(severity Severity) []Issue {
	out := make([]Issue, 0)

	for _, i := range r.Issues {
		if i.Severity == severity {
			out = append(out, i)
		}
	}

	return out
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// Check lints s against the catalog. Typed nodes are lowered first. Unknown
// kinds and unrecognised values are warnings; anything the rendering engine
// cannot interpret is an error.
func (r *Registry) Check(s *score.Score) *Report {
	report := &Report{Issues: make([]Issue, 0)}

	if s == nil || s.Graph == nil {
		report.add(Issue{Severity: SeverityError, Code: codeMissingGraph, Message: "score has no graph"})

		return report
	}

	checkVersion(report, s.Version)

	lowered, err := s.Lower()
	if err != nil {
		report.add(Issue{Severity: SeverityError, Code: codeLoweringFailed, Message: err.Error()})

		return report
	}

	nodes, _ := lowered.Graph.GenericNodes()
	byID := make(map[string]*score.Node, len(nodes))

	for _, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			report.add(Issue{
				Severity: SeverityError,
				Code:     codeDuplicateID,
				Message:  fmt.Sprintf("node id %q is used more than once", n.ID),
				Node:     n.ID,
			})
		} else {
			byID[n.ID] = n
		}

		r.checkNode(report, n)
	}

	r.checkEdges(report, lowered.Graph.Edges, byID)

	r.logger.Debug("Checked score",
		slog.String("graph", s.Graph.ID),
		slog.Int("nodes", len(nodes)),
		slog.Int("issues", len(report.Issues)),
	)

	return report
}

func checkVersion(report *Report, version string) {
	v, err := score.ParseVersion(version)
	if err != nil {
		report.add(Issue{Severity: SeverityError, Code: codeVersionInvalid, Message: err.Error(), Field: "version"})

		return
	}

	current := score.MustParseVersion(score.CurrentVersion)

	switch {
	case !v.Compatible(current):
		report.add(Issue{
			Severity: SeverityError,
			Code:     codeVersionIncompatible,
			Message:  fmt.Sprintf("version %s is not compatible with %s", v, current),
			Field:    "version",
		})
	case v.Compare(current) > 0:
		report.add(Issue{
			Severity: SeverityWarn,
			Code:     codeVersionNewer,
			Message:  fmt.Sprintf("version %s is newer than %s", v, current),
			Field:    "version",
		})
	}
}

func (r *Registry) checkNode(report *Report, n *score.Node) {
	e, ok := r.lookup(n.Kind)
	if !ok {
		report.add(Issue{
			Severity: SeverityWarn,
			Code:     codeUnknownKind,
			Message:  fmt.Sprintf("kind %q is not in the catalog", n.Kind),
			Node:     n.ID,
		})

		return
	}

	r.checkConfig(report, e, n)
	checkParams(report, e.spec, n)
}

func (r *Registry) checkConfig(report *Report, e *entry, n *score.Node) {
	result, err := e.schema.Validate(gojsonschema.NewGoLoader(n.Config))
	if err != nil {
		report.add(Issue{Severity: SeverityError, Code: codeConfigInvalid, Message: err.Error(), Node: n.ID})

		return
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			field = ""
		}

		report.add(Issue{
			Severity: SeverityError,
			Code:     codeConfigInvalid,
			Message:  desc.Description(),
			Node:     n.ID,
			Field:    field,
		})
	}

	for _, key := range sortedKeys(n.Config) {
		f, declared := e.spec.Field(key)
		if !declared {
			report.add(Issue{
				Severity: SeverityWarn,
				Code:     codeUnknownConfig,
				Message:  fmt.Sprintf("config key %q is not declared by %s", key, e.spec.Name),
				Node:     n.ID,
				Field:    key,
			})

			continue
		}

		value, isString := n.Config[key].(string)
		if len(f.Enum) > 0 && isString && !slices.Contains(f.Enum, value) {
			report.add(Issue{
				Severity: SeverityWarn,
				Code:     codeEnumInvalid,
				Message: fmt.Sprintf("%q is not one of %s; the engine falls back to %v",
					value, strings.Join(f.Enum, ", "), f.Default),
				Node:  n.ID,
				Field: key,
			})
		}
	}
}

func checkParams(report *Report, spec typed.KindSpec, n *score.Node) {
	for _, name := range sortedKeys(n.Params) {
		if _, declared := spec.Param(name); !declared {
			report.add(Issue{
				Severity: SeverityWarn,
				Code:     codeUnknownParam,
				Message:  fmt.Sprintf("param %q is not declared by %s", name, spec.Name),
				Node:     n.ID,
				Field:    name,
			})
		}

		for i, c := range n.Params[name] {
			field := fmt.Sprintf("%s[%d]", name, i)

			if _, known := typed.CommandArgs(c.Name); !known {
				report.add(Issue{
					Severity: SeverityWarn,
					Code:     codeUnknownCommand,
					Message:  fmt.Sprintf("command %q is not recognised", c.Name),
					Node:     n.ID,
					Field:    field,
				})

				continue
			}

			if err := typed.CheckCommand(c); err != nil {
				report.add(Issue{
					Severity: SeverityError,
					Code:     codeCommandInvalid,
					Message:  err.Error(),
					Node:     n.ID,
					Field:    field,
				})
			}
		}
	}
}

func (r *Registry) checkEdges(report *Report, edges []*score.Edge, nodes map[string]*score.Node) {
	seen := make(map[string]bool, len(edges))

	for _, e := range edges {
		if seen[e.ID] {
			report.add(Issue{
				Severity: SeverityError,
				Code:     codeDuplicateID,
				Message:  fmt.Sprintf("edge id %q is used more than once", e.ID),
				Edge:     e.ID,
			})
		}

		seen[e.ID] = true

		source, sourceOK := nodes[e.Source]
		target, targetOK := nodes[e.Target]

		if !sourceOK {
			report.add(Issue{
				Severity: SeverityError,
				Code:     codeDanglingEdge,
				Message:  fmt.Sprintf("source %q is not a node of the graph", e.Source),
				Edge:     e.ID,
				Field:    "source",
			})
		}

		if !targetOK {
			report.add(Issue{
				Severity: SeverityError,
				Code:     codeDanglingEdge,
				Message:  fmt.Sprintf("target %q is not a node of the graph", e.Target),
				Edge:     e.ID,
				Field:    "target",
			})
		}

		if e.Source == e.Target {
			report.add(Issue{
				Severity: SeverityWarn,
				Code:     codeSelfConnection,
				Message:  fmt.Sprintf("node %q is connected to itself", e.Source),
				Edge:     e.ID,
			})
		}

		if sourceOK {
			r.checkPort(report, e, source.Kind, e.SourcePort, "sourcePort", true)
		}

		if targetOK {
			r.checkPort(report, e, target.Kind, e.TargetPort, "targetPort", false)
		}
	}
}

func (r *Registry) checkPort(report *Report, e *score.Edge, kind, port, field string, output bool) {
	if port == "" {
		return
	}

	spec, ok := r.Kind(kind)
	if !ok {
		return
	}

	ports := spec.Inputs
	if output {
		ports = spec.Outputs
	}

	if _, ok := ports[port]; !ok {
		report.add(Issue{
			Severity: SeverityWarn,
			Code:     codeUnknownPort,
			Message:  fmt.Sprintf("%s has no port %q", spec.Name, port),
			Edge:     e.ID,
			Field:    field,
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
