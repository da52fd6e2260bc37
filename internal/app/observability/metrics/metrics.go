package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal      metric.Int64Counter
	PlanDuration           metric.Float64Histogram
	PlansInFlight          metric.Int64UpDownCounter
	ActiveSessions         metric.Int64Gauge
	TemplateRenderDuration metric.Float64Histogram
	APIRateLimitedTotal    metric.Int64Counter
	LLMTokensTotal         metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider.
// Only the first call has any effect, so the provider must be installed first.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("trip-planner")
		var err error
		m := &AppMetrics{}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"plan_requests_total",
			metric.WithDescription("Total number of planning calls by variant and outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_requests_total: %v", err)
		}

		m.PlanDuration, err = meter.Float64Histogram(
			"plan_duration_seconds",
			metric.WithDescription("Duration of planning calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_duration_seconds: %v", err)
		}

		m.PlansInFlight, err = meter.Int64UpDownCounter(
			"plans_in_flight",
			metric.WithDescription("Planning calls currently awaiting a response"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plans_in_flight: %v", err)
		}

		m.ActiveSessions, err = meter.Int64Gauge(
			"active_sessions_current",
			metric.WithDescription("Current number of browser sessions holding planner state"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create active_sessions_current: %v", err)
		}

		m.TemplateRenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_render_duration_seconds: %v", err)
		}

		m.APIRateLimitedTotal, err = meter.Int64Counter(
			"api_rate_limited_total",
			metric.WithDescription("Requests rejected by the API rate limiter"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create api_rate_limited_total: %v", err)
		}

		m.LLMTokensTotal, err = meter.Int64Counter(
			"llm_tokens_total",
			metric.WithDescription("Tokens consumed by model calls"),
			metric.WithUnit("{token}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_tokens_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, creating them against whatever provider is
// installed if InitAppMetrics has not run yet (tests get no-op instruments).
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
