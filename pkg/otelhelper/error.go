package otelhelper

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SetError records err on span, marks the span failed and adds an
// error_occurred event carrying attrs and the dynamic type of err.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	eventAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	eventAttrs = append(eventAttrs, attrs...)
	eventAttrs = append(eventAttrs, attribute.String(ErrorTypeKey, fmt.Sprintf("%T", err)))

	span.AddEvent("error_occurred", trace.WithAttributes(eventAttrs...))
}
