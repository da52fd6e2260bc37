package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const (
	// PlanTripPath is the backend route both sides agree on.
	PlanTripPath = "/api/plan-trip"

	defaultBackendURL = "http://localhost:8080"
	defaultUserAgent  = "go-tripplanner/1.0"
	maxErrorBody      = 4 << 10
	maxResponseBody   = 4 << 20
)

// BackendPlanner posts the request to an HTTP backend that does the model
// call and returns a finished itinerary.
type BackendPlanner struct {
	baseURL string
	ua      string
	http    *http.Client
	logger  *zap.Logger
}

var _ Planner = (*BackendPlanner)(nil)

// BackendOption configures a BackendPlanner.
type BackendOption func(*BackendPlanner)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(h *http.Client) BackendOption {
	return func(b *BackendPlanner) { b.http = h }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) BackendOption {
	return func(b *BackendPlanner) { b.ua = ua }
}

// WithTimeout bounds the whole exchange. Zero leaves the client unbounded.
func WithTimeout(d time.Duration) BackendOption {
	return func(b *BackendPlanner) {
		if d > 0 {
			b.http.Timeout = d
		}
	}
}

func NewBackendPlanner(baseURL string, logger *zap.Logger, opts ...BackendOption) *BackendPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	b := &BackendPlanner{
		baseURL: baseURL,
		ua:      defaultUserAgent,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:  logger,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Endpoint is the full URL the planner posts to.
func (b *BackendPlanner) Endpoint() string {
	return b.baseURL + PlanTripPath
}

func (b *BackendPlanner) Plan(ctx context.Context, req models.TripPlanRequest) (models.Itinerary, error) {
	ctx, span := otel.Tracer("BackendPlanner").Start(ctx, "Plan")
	defer span.End()
	span.SetAttributes(attribute.String("endpoint", b.Endpoint()), attribute.String("city", req.City))

	l := b.logger.With(zap.String("method", "BackendPlanner.Plan"), zap.String("endpoint", b.Endpoint()))

	body, err := json.Marshal(req)
	if err != nil {
		return models.Itinerary{}, &PlanningError{Kind: models.ErrValidation, Op: "backend.encode", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return models.Itinerary{}, transportError("backend.request", 0, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", b.ua)

	res, err := b.http.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		l.Error("Backend request failed", zap.Error(err))
		return models.Itinerary{}, transportError("backend.post", 0, err)
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		err := fmt.Errorf("API error: %d", res.StatusCode)
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			err = fmt.Errorf("API error: %d: %s", res.StatusCode, msg)
		}
		span.SetStatus(codes.Error, "Non-success status")
		l.Error("Backend returned non-success status", zap.Int("status", res.StatusCode))
		return models.Itinerary{}, transportError("backend.post", res.StatusCode, err)
	}

	var it models.Itinerary
	dec := json.NewDecoder(io.LimitReader(res.Body, maxResponseBody))
	if err := dec.Decode(&it); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Undecodable body")
		return models.Itinerary{}, shapeError("backend.decode", err)
	}
	if err := it.Validate(); err != nil {
		span.SetStatus(codes.Error, "Invalid itinerary")
		return models.Itinerary{}, shapeError("backend.validate", err)
	}
	if it.Sources == nil {
		it.Sources = []models.Source{}
	}

	span.SetStatus(codes.Ok, "Itinerary received")
	l.Info("Itinerary received", zap.Int("days", len(it.ItineraryPlan)))
	return it, nil
}

func (b *BackendPlanner) String() string {
	return "backend(" + b.baseURL + ")"
}
