package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for editor commands.
const (
	AttrCommand     = "command.id"
	AttrExecuted    = "command.executed"
	AttrStructural  = "command.structural"
	AttrToken       = "token.subject"
	AttrWordIndex   = "token.word_index"
	AttrDocument    = "document.subject"
	AttrRemoved     = "cleanup.removed"
	AttrErrorType   = "error.type"
	SpanPrefixEdit  = "edit."
	SpanLayoutPass  = "layout.pass"
	SpanImportFile  = "import.file"
	EventEscalated  = "chain.escalated"
	EventCleanup    = "cleanup.done"
	EventNotApplied = "command.not_applicable"
)

// StartCommand opens a span for the named editor command.
func StartCommand(ctx context.Context, tracer trace.Tracer, id string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, SpanPrefixEdit+id, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attribute.String(AttrCommand, id))
	span.SetAttributes(attrs...)
	return ctx, span
}

// EndCommand records the outcome of a command and ends its span. A command
// that did nothing is not an error.
func EndCommand(span trace.Span, executed bool, err error) {
	span.SetAttributes(attribute.Bool(AttrExecuted, executed))
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !executed:
		span.AddEvent(EventNotApplied)
		span.SetStatus(codes.Ok, "")
	default:
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
