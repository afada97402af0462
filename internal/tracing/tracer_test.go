package tracing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled)
	require.Equal(t, "file", cfg.Exporter)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "ezwrite", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(DefaultConfig())
	require.NoError(t, err)

	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	_, span := p.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Exporters(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"file", Config{Enabled: true, Exporter: "file", FilePath: filepath.Join(t.TempDir(), "t.jsonl")}, ""},
		{"stdout", Config{Enabled: true, Exporter: "stdout"}, ""},
		{"none", Config{Enabled: true, Exporter: "none"}, ""},
		{"file without path", Config{Enabled: true, Exporter: "file"}, "file_path required"},
		{"unknown", Config{Enabled: true, Exporter: "zipkin"}, "unsupported exporter type: zipkin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, p.Enabled())
			require.NoError(t, p.Shutdown(context.Background()))
		})
	}
}

func TestCommandSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")

	_, span := StartCommand(context.Background(), tracer, "delete.left", attribute.Int(AttrWordIndex, 3))
	EndCommand(span, true, nil)
	_, span = StartCommand(context.Background(), tracer, "delete.left")
	EndCommand(span, false, nil)
	_, span = StartCommand(context.Background(), tracer, "insert.char")
	EndCommand(span, false, errors.New("boom"))

	spans := rec.Ended()
	require.Len(t, spans, 3)

	require.Equal(t, "edit.delete.left", spans[0].Name())
	attrs := attributeMap(spans[0].Attributes())
	require.Equal(t, "delete.left", attrs[AttrCommand])
	require.Equal(t, int64(3), attrs[AttrWordIndex])
	require.Equal(t, true, attrs[AttrExecuted])
	require.Equal(t, codes.Ok, spans[0].Status().Code)

	require.Len(t, spans[1].Events(), 1)
	require.Equal(t, EventNotApplied, spans[1].Events()[0].Name)

	require.Equal(t, codes.Error, spans[2].Status().Code)
	require.Equal(t, "boom", spans[2].Status().Description)
}
