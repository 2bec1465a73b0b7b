// Package codec converts scores to and from their JSON wire form.
//
// Encoding lowers every typed node, validates the resulting structure and
// writes camelCase keys. Decoding validates the raw document against the
// embedded JSON schema before any entity is built, reporting every structural
// issue at once.
package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed score.schema.json
var schemaJSON []byte

// Schema returns the JSON schema every decoded document must satisfy.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
})

// Option configures an Encoder.
type Option func(*Encoder)

// WithIndent pretty-prints the output, indenting nested values by indent.
func WithIndent(indent string) Option {
	return func(e *Encoder) {
		e.indent = indent
	}
}

// Encoder writes scores to an output stream.
type Encoder struct {
	w      io.Writer
	indent string
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	e := &Encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode lowers s and writes its JSON form followed by a newline. Lowering
// errors are returned unchanged so callers can match them with errors.Is.
func (e *Encoder) Encode(s *score.Score) error {
	data, err := e.marshal(s)
	if err != nil {
		return err
	}

	_, err = e.w.Write(append(data, '\n'))

	return err
}

func (e *Encoder) marshal(s *score.Score) ([]byte, error) {
	if s == nil {
		return nil, &SchemaValidationError{Issues: []FieldError{{Field: "(root)", Msg: "score is nil"}}}
	}

	lowered, err := s.Lower()
	if err != nil {
		return nil, err
	}

	w, err := toWire(lowered)
	if err != nil {
		return nil, err
	}

	if err := structValidator().Struct(w); err != nil {
		return nil, fromValidator(err)
	}

	var data []byte
	if e.indent != "" {
		data, err = json.MarshalIndent(w, "", e.indent)
	} else {
		data, err = json.Marshal(w)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding score: %w", err)
	}

	return data, nil
}

// Encode returns the JSON form of s.
func Encode(s *score.Score, opts ...Option) ([]byte, error) {
	return NewEncoder(io.Discard, opts...).marshal(s)
}

// Decoder reads scores from an input stream.
type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads one whole document from the stream.
func (d *Decoder) Decode() (*score.Score, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, fmt.Errorf("reading score: %w", err)
	}

	return Decode(data)
}

// Decode parses a JSON document into a score built solely from generic
// entities. Missing loading policies default to allContentPlaythrough.
//
// Numbers inside config and command args decode as float64, so a score
// survives Encode then Decode unchanged only when those maps hold JSON
// native values: string, float64, bool, nil, []any and map[string]any.
func Decode(data []byte) (*score.Score, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var w wireScore
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &SchemaValidationError{Issues: []FieldError{{Field: "(root)", Msg: err.Error()}}}
	}

	return fromWire(&w), nil
}

// Validate checks data against the wire schema without building a score.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &SchemaValidationError{Issues: []FieldError{{Field: "(root)", Msg: err.Error()}}}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validating score: %w", err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, FieldError{Field: issuePath(desc), Msg: desc.Description()})
	}

	return &SchemaValidationError{Issues: issues}
}

// issuePath renders the dotted path of the offending value. Missing and
// unexpected properties are reported at the property itself.
func issuePath(desc gojsonschema.ResultError) string {
	path := strings.TrimPrefix(desc.Context().String(), "(root)")
	path = strings.TrimPrefix(path, ".")

	switch desc.Type() {
	case "required", "additional_property_not_allowed":
		if p, ok := desc.Details()["property"].(string); ok {
			if path == "" {
				path = p
			} else {
				path += "." + p
			}
		}
	}

	if path == "" {
		return "(root)"
	}

	return path
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating score: %w", err)
	}

	issues := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		// Drop the root struct name from the namespace.
		_, field, _ := strings.Cut(fe.Namespace(), ".")

		msg := "failed on the '" + fe.Tag() + "' rule"
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}

		issues = append(issues, FieldError{Field: field, Msg: msg})
	}

	return &SchemaValidationError{Issues: issues}
}
