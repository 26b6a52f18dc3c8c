// Package otel provides OpenTelemetry tracing helpers for synchronization runs.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by the spans of the application
const (
	AttrSyncType     = attribute.Key("sync.type")
	AttrSyncRule     = attribute.Key("sync.rule")
	AttrSyncUser     = attribute.Key("sync.user")
	AttrReportID     = attribute.Key("sync.report.id")
	AttrReportStatus = attribute.Key("sync.report.status")
	AttrInstanceID   = attribute.Key("instance.id")
	AttrResultStatus = attribute.Key("sync.result.status")
	AttrObjectCount  = attribute.Key("payload.objects")
	AttrTargetCount  = attribute.Key("sync.targets")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise it returns the
// span already in the context.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records err on the span and marks it failed.
// The status description stays generic so instance credentials or URLs in
// error messages only reach the span events.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
