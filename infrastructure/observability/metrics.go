package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"thumbnailbot/config"
	"thumbnailbot/domain/entities"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider manages OpenTelemetry metrics for the bot.
// A nil provider records nothing.
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	interactionsCounter          metric.Int64Counter
	transitionsCounter           metric.Int64Counter
	platformFailuresCounter      metric.Int64Counter
	submittedCounter             metric.Int64Counter
	exportRowsCounter            metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
	rosterChangesCounter         metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)

	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("thumbnailbot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&mp.interactionsCounter, InteractionsTotal, "Total number of Discord interactions handled"},
		{&mp.transitionsCounter, TransitionsTotal, "Total number of finished request transitions"},
		{&mp.platformFailuresCounter, PlatformFailuresTotal, "Total number of Discord steps that failed during a transition"},
		{&mp.submittedCounter, ThumbnailsSubmitted, "Total number of thumbnails recorded"},
		{&mp.exportRowsCounter, ExportRowsTotal, "Total number of rows written to exports"},
		{&mp.natsMessagesPublishedCounter, NATSMessagesPublishedTotal, "Total number of NATS messages published"},
		{&mp.rosterChangesCounter, RosterChangesTotal, "Total number of roster entries created, reactivated or removed"},
	}

	for _, c := range counters {
		counter, err := mp.meter.Int64Counter(c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp == nil {
		return nil
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordInteraction records a handled Discord interaction
func (mp *MetricsProvider) RecordInteraction(interactionType, name string) {
	if !mp.isEnabled() {
		return
	}

	mp.interactionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelType, interactionType),
			attribute.String(LabelName, name),
		),
	)
}

// RecordTransition records a finished request transition
func (mp *MetricsProvider) RecordTransition(kind entities.TransitionKind, status entities.TransitionStatus) {
	if !mp.isEnabled() {
		return
	}

	mp.transitionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelKind, string(kind)),
			attribute.String(LabelStatus, string(status)),
		),
	)
}

// RecordPlatformFailure records a Discord step that failed during a transition
func (mp *MetricsProvider) RecordPlatformFailure(step string) {
	if !mp.isEnabled() {
		return
	}

	mp.platformFailuresCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelStep, step),
		),
	)
}

// RecordThumbnailSubmitted records a thumbnail written to the ledger
func (mp *MetricsProvider) RecordThumbnailSubmitted(category string) {
	if !mp.isEnabled() {
		return
	}

	mp.submittedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelCategory, category),
		),
	)
}

// RecordExportRows records the rows of a rendered export
func (mp *MetricsProvider) RecordExportRows(rows int) {
	if !mp.isEnabled() {
		return
	}

	mp.exportRowsCounter.Add(context.Background(), int64(rows))
}

// RecordNATSMessagePublished records a NATS message being published
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// RecordRosterChange records a roster entry created, reactivated or removed
func (mp *MetricsProvider) RecordRosterChange(kind, action string) {
	if !mp.isEnabled() {
		return
	}

	mp.rosterChangesCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelKind, kind),
			attribute.String(LabelAction, action),
		),
	)
}

// isEnabled checks if metrics are enabled and initialized with an exporter
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}

	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meterProvider != nil
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	return globalMetrics.Shutdown(ctx)
}
