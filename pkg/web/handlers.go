// Package web provides the HTTP handlers of the score validation service.
package web

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/otelhelper"
	"github.com/dukex/nfgrapher/pkg/registry"
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type APIHandlers struct {
	logger    *slog.Logger
	validator *validator.Validate
	registry  *registry.Registry
	tracer    trace.Tracer
}

// NewAPIHandlers builds the handlers. A nil tracer records nothing.
func NewAPIHandlers(
	logger *slog.Logger,
	validator *validator.Validate,
	registry *registry.Registry,
	tracer trace.Tracer,
) *APIHandlers {
	if tracer == nil {
		tracer = otelhelper.NoopTracer()
	}

	return &APIHandlers{
		logger:    logger,
		validator: validator,
		registry:  registry,
		tracer:    tracer,
	}
}

// ScoreQuery holds the query parameters accepted by the score endpoints.
type ScoreQuery struct {
	// Indent is the number of spaces used to pretty-print normalized output.
	Indent int `validate:"gte=0,lte=8"`
	// Strict makes warnings fail validation.
	Strict bool
}

// ValidationResult is the body returned by ValidateScore.
type ValidationResult struct {
	Valid   bool             `json:"valid"`
	GraphID string           `json:"graph_id"`
	Version string           `json:"version"`
	Issues  []registry.Issue `json:"issues"`
}

func (h *APIHandlers) GetKinds(c fiber.Ctx) error {
	kinds := h.registry.Kinds()

	return c.JSON(fiber.Map{
		"kinds":       kinds,
		"total_count": len(kinds),
	})
}

func (h *APIHandlers) GetKind(c fiber.Ctx) error {
	kind := c.Params("kind")

	spec, ok := h.registry.Kind(kind)
	if !ok {
		return notFound(c, "kind not found: "+kind)
	}

	return c.JSON(fiber.Map{
		"kind":   spec,
		"schema": registry.ConfigSchema(spec),
	})
}

func (h *APIHandlers) GetScoreSchema(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(codec.Schema())
}

// ValidateScore decodes the request body and lints it against the catalog.
// Structural failures are reported as a problem document; catalog findings
// are returned in the result body.
func (h *APIHandlers) ValidateScore(c fiber.Ctx) error {
	query, err := h.parseScoreQuery(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	ctx, span := otelhelper.StartSpan(c.Context(), h.tracer, "web.validate_score",
		attribute.String(otelhelper.OperationKey, "validate"),
	)
	defer span.End()

	s, err := h.decode(ctx, c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		otelhelper.SetError(span, err)

		return handleScoreError(c, err)
	}

	report := h.registry.Check(s)
	span.SetAttributes(attribute.Int(otelhelper.IssueCountKey, len(report.Issues)))

	valid := !report.HasErrors()
	if query.Strict && len(report.Issues) > 0 {
		valid = false
	}

	h.logger.DebugContext(ctx, "Validated score",
		slog.String("graph", s.Graph.ID),
		slog.Bool("valid", valid),
		slog.Int("issues", len(report.Issues)),
	)

	return c.JSON(ValidationResult{
		Valid:   valid,
		GraphID: s.Graph.ID,
		Version: s.Version,
		Issues:  report.Issues,
	})
}

// NormalizeScore decodes the request body and answers with its canonical encoding.
func (h *APIHandlers) NormalizeScore(c fiber.Ctx) error {
	query, err := h.parseScoreQuery(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	ctx, span := otelhelper.StartSpan(c.Context(), h.tracer, "web.normalize_score",
		attribute.String(otelhelper.OperationKey, "normalize"),
	)
	defer span.End()

	s, err := h.decode(ctx, c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		otelhelper.SetError(span, err)

		return handleScoreError(c, err)
	}

	var opts []codec.Option
	if query.Indent > 0 {
		opts = append(opts, codec.WithIndent(strings.Repeat(" ", query.Indent)))
	}

	data, err := codec.Encode(s, opts...)
	if err != nil {
		otelhelper.SetError(span, err)

		return handleScoreError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(data)
}

// decode reads a YAML body when contentType names YAML and JSON otherwise.
func (h *APIHandlers) decode(ctx context.Context, contentType string, body []byte) (*score.Score, error) {
	_, span := otelhelper.StartSpan(ctx, h.tracer, "score.decode")
	defer span.End()

	var (
		s   *score.Score
		err error
	)

	if strings.Contains(contentType, "yaml") {
		s, err = codec.DecodeYAML(body)
	} else {
		s, err = codec.Decode(body)
	}

	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	span.SetAttributes(
		attribute.String(otelhelper.GraphIDKey, s.Graph.ID),
		attribute.String(otelhelper.ScoreVersionKey, s.Version),
		attribute.Int(otelhelper.NodeCountKey, len(s.Graph.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(s.Graph.Edges)),
	)

	return s, nil
}

// parseScoreQuery parses and validates the query parameters of the score endpoints.
func (h *APIHandlers) parseScoreQuery(c fiber.Ctx) (*ScoreQuery, error) {
	query := &ScoreQuery{}

	if indentStr := c.Query("indent"); indentStr != "" {
		indent, err := strconv.Atoi(indentStr)
		if err != nil {
			return nil, err
		}

		query.Indent = indent
	}

	if strictStr := c.Query("strict"); strictStr != "" {
		strict, err := strconv.ParseBool(strictStr)
		if err != nil {
			return nil, err
		}

		query.Strict = strict
	}

	if err := h.validator.Struct(query); err != nil {
		return nil, err
	}

	return query, nil
}
