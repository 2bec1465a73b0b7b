package otelhelper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpanAndSetError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	_, span := StartSpan(context.Background(), tracer, "score.encode", attribute.String(GraphIDKey, "g"))
	SetError(span, errors.New("boom"), attribute.String(OperationKey, "encode"))
	span.End()

	spans := recorder.Ended()
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "score.encode", spans[0].Name())
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Contains(t, spans[0].Attributes(), attribute.String(GraphIDKey, "g"))
		if assert.Len(t, spans[0].Events(), 2) {
			event := spans[0].Events()[1]
			assert.Equal(t, "error_occurred", event.Name)
			assert.Contains(t, event.Attributes, attribute.String(OperationKey, "encode"))
			assert.Contains(t, event.Attributes, attribute.String(ErrorTypeKey, "*errors.errorString"))
		}
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := StartSpan(context.Background(), NoopTracer(), "noop")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
}
