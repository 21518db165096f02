// Package metrics exports completed session metrics to an OpenTelemetry
// collector
package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blinkrail/blinkrail/internal/apperr"
	"github.com/blinkrail/blinkrail/internal/session"
)

const serviceName = "blinkrail"

var (
	errTelemetryDisabled = &apperr.Error{
		Message: "telemetry is disabled or the collector endpoint is not configured",
	}
	errCreateExporter = &apperr.Error{
		Message: "unable to create OTLP exporter",
	}
	errCreateInstrument = &apperr.Error{
		Message: "unable to create %s instrument",
	}
)

// Recorder receives completed sessions.
type Recorder interface {
	RecordCompleted(ctx context.Context, sess *session.Session) error
	Close(ctx context.Context) error
}

// Config holds OTLP exporter settings.
type Config struct {
	Endpoint string
	Version  string
	Enabled  bool
	Insecure bool
}

// Exporter records session metrics through an OpenTelemetry meter provider.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	sessionsTotal metric.Int64Counter
	sparksTotal   metric.Int64Counter
	xpTotal       metric.Int64Counter
	interruptions metric.Int64Counter
	durationHist  metric.Float64Histogram
}

// New creates an exporter that pushes metrics to the configured collector
// over gRPC.
func New(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, errTelemetryDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}

	if cfg.Insecure {
		opts = append(
			opts,
			otlpmetricgrpc.WithDialOption(
				grpc.WithTransportCredentials(insecure.NewCredentials()),
			),
			otlpmetricgrpc.WithInsecure(),
		)
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errCreateExporter.Wrap(err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, errCreateExporter.Wrap(err)
	}

	e, err := NewWithReader(sdkmetric.NewPeriodicReader(exp), res)
	if err != nil {
		return nil, err
	}

	otel.SetMeterProvider(e.provider)

	return e, nil
}

// NewWithReader creates an exporter on top of an existing metric reader.
func NewWithReader(
	reader sdkmetric.Reader,
	res *resource.Resource,
) (*Exporter, error) {
	opts := []sdkmetric.Option{sdkmetric.WithReader(reader)}
	if res != nil {
		opts = append(opts, sdkmetric.WithResource(res))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider}

	var err error

	e.sessionsTotal, err = meter.Int64Counter(
		"blinkrail_sessions_completed_total",
		metric.WithDescription("Total number of completed focus sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, errCreateInstrument.Fmt("sessions").Wrap(err)
	}

	e.sparksTotal, err = meter.Int64Counter(
		"blinkrail_focus_sparks_total",
		metric.WithDescription("Total focus sparks earned"),
		metric.WithUnit("{spark}"),
	)
	if err != nil {
		return nil, errCreateInstrument.Fmt("sparks").Wrap(err)
	}

	e.xpTotal, err = meter.Int64Counter(
		"blinkrail_experience_points_total",
		metric.WithDescription("Total experience points earned"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, errCreateInstrument.Fmt("experience").Wrap(err)
	}

	e.interruptions, err = meter.Int64Counter(
		"blinkrail_interruptions_total",
		metric.WithDescription("Total interruptions logged during sessions"),
		metric.WithUnit("{interruption}"),
	)
	if err != nil {
		return nil, errCreateInstrument.Fmt("interruptions").Wrap(err)
	}

	e.durationHist, err = meter.Float64Histogram(
		"blinkrail_session_duration_seconds",
		metric.WithDescription("Planned duration of completed sessions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, errCreateInstrument.Fmt("duration").Wrap(err)
	}

	return e, nil
}

// RecordCompleted records the outcome of a completed session.
func (e *Exporter) RecordCompleted(
	ctx context.Context,
	sess *session.Session,
) error {
	r := sess.CalculateRewards()

	opt := metric.WithAttributes(
		attribute.Bool("bonus", r.HasBonus),
		attribute.Bool("finished_early", sess.Remaining() > 0),
	)

	e.sessionsTotal.Add(ctx, 1, opt)
	e.sparksTotal.Add(ctx, int64(r.FocusSparks), opt)
	e.xpTotal.Add(ctx, int64(r.ExperiencePoints), opt)
	e.interruptions.Add(ctx, int64(len(sess.Interruptions())), opt)
	e.durationHist.Record(ctx, sess.Duration().Seconds(), opt)

	return nil
}

// Close shuts down the provider and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

// NoOp is a recorder that does nothing. It is used when telemetry is off.
type NoOp struct{}

func (NoOp) RecordCompleted(context.Context, *session.Session) error {
	return nil
}

func (NoOp) Close(context.Context) error {
	return nil
}
