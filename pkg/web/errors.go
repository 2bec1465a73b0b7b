package web

import (
	"errors"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/typecheck"
	"github.com/dukex/nfgrapher/pkg/typed"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

// schemaProblem is a validation problem listing every offending field.
type schemaProblem struct {
	*problems.Problem
	Issues []codec.FieldError `json:"issues"`
}

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleScoreError maps codec and builder failures to problem documents.
func handleScoreError(c fiber.Ctx, err error) error {
	var schemaErr *codec.SchemaValidationError

	switch {
	case errors.As(err, &schemaErr):
		problem := schemaProblem{
			Problem: problems.NewStatusProblem(400).
				WithInstance(c.Path()).
				WithType("schema_validation_error").
				WithDetail("score document does not match the schema"),
			Issues: schemaErr.Issues,
		}

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case errors.Is(err, typecheck.ErrTypeMismatch),
		errors.Is(err, typed.ErrDomainValidation),
		errors.Is(err, typed.ErrConnection):
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("score_invalid").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)

	default:
		return internalError(c, err)
	}
}
