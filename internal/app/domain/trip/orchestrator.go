package trip

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
)

// Orchestrator owns the planner state for one browser session. At most one
// planning call is in flight at a time.
type Orchestrator struct {
	mu      sync.Mutex
	state   models.TripState
	planner planner.Planner
	logger  *zap.Logger
	wg      sync.WaitGroup
	closed  bool
	now     func() time.Time
}

func NewOrchestrator(p planner.Planner, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		state:   models.Idle{Form: models.DefaultTripPlanRequest()},
		planner: p,
		logger:  logger,
		now:     time.Now,
	}
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() models.TripState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit starts planning req. It returns once the state is Loading; the call
// itself runs in the background and is not cancelled with ctx. A second
// submit while loading returns ErrPlanInFlight and changes nothing, and any
// submit after Close returns ErrShuttingDown. An
// invalid request moves straight to Failure without calling the planner.
func (o *Orchestrator) Submit(ctx context.Context, req models.TripPlanRequest) error {
	l := o.logger.With(zap.String("method", "Submit"), zap.String("city", req.City))

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return models.ErrShuttingDown
	}
	if _, loading := o.state.(models.Loading); loading {
		o.mu.Unlock()
		return models.ErrPlanInFlight
	}
	if err := req.Validate(); err != nil {
		o.state = models.Failure{Request: req, Message: models.GenericFailureMessage}
		o.mu.Unlock()
		l.Warn("Rejected trip request", zap.Error(err))
		return err
	}
	o.state = models.Loading{Request: req, StartedAt: o.now()}
	o.wg.Add(1)
	o.mu.Unlock()

	go o.run(context.WithoutCancel(ctx), req)
	return nil
}

func (o *Orchestrator) run(ctx context.Context, req models.TripPlanRequest) {
	defer o.wg.Done()

	ctx, span := otel.Tracer("TripOrchestrator").Start(ctx, "Plan")
	defer span.End()
	span.SetAttributes(
		attribute.String("city", req.City),
		attribute.Int("duration_days", req.DurationDays),
		attribute.String("planner", o.variant()),
	)

	l := o.logger.With(zap.String("method", "run"), zap.String("city", req.City))
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("planner", o.variant()))
	m.PlansInFlight.Add(ctx, 1, attrs)
	defer m.PlansInFlight.Add(ctx, -1, attrs)

	start := o.now()
	it, err := o.planner.Plan(ctx, req)
	elapsed := o.now().Sub(start)

	outcome := "success"
	var next models.TripState = models.Success{Request: req, Itinerary: it}
	if err != nil {
		outcome = "failure"
		next = models.Failure{Request: req, Message: models.GenericFailureMessage}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Planning failed")
		l.Error("Error generating itinerary", zap.Error(err), zap.Duration("elapsed", elapsed))
	} else {
		span.SetStatus(codes.Ok, "Itinerary ready")
		l.Info("Itinerary ready", zap.Int("days", len(it.ItineraryPlan)), zap.Duration("elapsed", elapsed))
	}

	m.PlanRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("planner", o.variant()),
		attribute.String("outcome", outcome),
	))
	m.PlanDuration.Record(ctx, elapsed.Seconds(), attrs)

	o.mu.Lock()
	o.state = next
	o.mu.Unlock()
}

// Reset returns to the default form. It is refused while loading.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state.(type) {
	case models.Loading:
		return models.ErrPlanInFlight
	case models.Idle:
		return nil
	}
	o.state = models.Idle{Form: models.DefaultTripPlanRequest()}
	return nil
}

// Wait blocks until no planning call is in flight.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close refuses further submits with ErrShuttingDown. The planning call
// already running, if any, still settles; Wait after Close cannot race a
// new one starting.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

func (o *Orchestrator) variant() string {
	if s, ok := o.planner.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", o.planner)
}
