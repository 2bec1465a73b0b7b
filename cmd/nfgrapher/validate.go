package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/otelhelper"
	"github.com/dukex/nfgrapher/pkg/registry"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const codeSchemaInvalid = "schema_invalid"

var errValidationFailed = errors.New("validation failed")

// fileReport is the outcome of validating one document.
type fileReport struct {
	File   string           `json:"file"`
	Valid  bool             `json:"valid"`
	Issues []registry.Issue `json:"issues"`
}

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate score documents against the schema and the kind catalog",
		ArgsUsage: "FILE... (use - for stdin)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat warnings as failures",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print reports as JSON",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of documents validated concurrently",
				Value:   4,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.NArg() == 0 {
				return errors.New("validate: at least one FILE is required")
			}

			logger := newLogger(command)

			tracer, shutdown := newTracer(ctx, command, logger)
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("Failed to shutdown tracer provider", "error", err)
				}
			}()

			v := &validation{
				command:  command,
				logger:   logger,
				registry: newRegistry(logger),
				tracer:   tracer,
				strict:   command.Bool("strict"),
			}

			reports, err := v.run(ctx, command.Args().Slice(), command.Int("jobs"))
			if err != nil {
				return err
			}

			if err := printReports(stdout(command), reports, command.Bool("json")); err != nil {
				return err
			}

			failed := 0

			for _, r := range reports {
				if !r.Valid {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d documents", errValidationFailed, failed, len(reports))
			}

			return nil
		},
	}
}

type validation struct {
	command  *cli.Command
	logger   *slog.Logger
	registry *registry.Registry
	tracer   trace.Tracer
	strict   bool
}

// run validates paths with at most jobs documents in flight. Reports keep the
// order of paths. Only I/O failures abort the run.
func (v *validation) run(ctx context.Context, paths []string, jobs int) ([]fileReport, error) {
	reports := make([]fileReport, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, path := range paths {
		g.Go(func() error {
			report, err := v.file(gCtx, path)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (v *validation) file(ctx context.Context, path string) (fileReport, error) {
	ctx, span := otelhelper.StartSpan(ctx, v.tracer, "cli.validate_file",
		attribute.String(otelhelper.OperationKey, "validate"),
		attribute.String("nfgrapher.file", path),
	)
	defer span.End()

	data, err := readInput(v.command, path)
	if err != nil {
		otelhelper.SetError(span, err)

		return fileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}

	report := fileReport{File: path, Issues: make([]registry.Issue, 0)}

	s, err := decodeInput(path, data)
	if err != nil {
		var schemaErr *codec.SchemaValidationError
		if !errors.As(err, &schemaErr) {
			otelhelper.SetError(span, err)

			return fileReport{}, fmt.Errorf("decoding %s: %w", path, err)
		}

		for _, issue := range schemaErr.Issues {
			report.Issues = append(report.Issues, registry.Issue{
				Severity: registry.SeverityError,
				Code:     codeSchemaInvalid,
				Message:  issue.Msg,
				Field:    issue.Field,
			})
		}

		span.SetAttributes(attribute.Int(otelhelper.IssueCountKey, len(report.Issues)))
		v.logger.DebugContext(ctx, "Score rejected by schema", "file", path, "issues", len(report.Issues))

		return report, nil
	}

	checked := v.registry.Check(s)
	report.Issues = checked.Issues
	report.Valid = !checked.HasErrors() && (!v.strict || len(checked.Issues) == 0)

	span.SetAttributes(
		attribute.String(otelhelper.GraphIDKey, s.Graph.ID),
		attribute.Int(otelhelper.IssueCountKey, len(report.Issues)),
	)

	v.logger.DebugContext(ctx, "Validated score", "file", path, "graph", s.Graph.ID, "valid", report.Valid)

	return report, nil
}

func printReports(w io.Writer, reports []fileReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(reports)
	}

	for _, r := range reports {
		if len(r.Issues) == 0 {
			if _, err := fmt.Fprintf(w, "%s: ok\n", r.File); err != nil {
				return err
			}

			continue
		}

		for _, issue := range r.Issues {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.File, formatIssue(issue)); err != nil {
				return err
			}
		}
	}

	return nil
}

func formatIssue(issue registry.Issue) string {
	location := ""

	switch {
	case issue.Node != "":
		location = "node " + issue.Node
	case issue.Edge != "":
		location = "edge " + issue.Edge
	}

	if issue.Field != "" {
		if location != "" {
			location += " "
		}

		location += issue.Field
	}

	if location != "" {
		location += ": "
	}

	return fmt.Sprintf("%s %s %s%s", issue.Severity, issue.Code, location, issue.Message)
}
