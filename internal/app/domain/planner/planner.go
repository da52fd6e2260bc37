package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// Planner turns a trip request into an itinerary. Implementations make one
// request/response exchange per call: no retries, no streaming, no partial results.
type Planner interface {
	Plan(ctx context.Context, req models.TripPlanRequest) (models.Itinerary, error)
}

// PlanningError is returned for every failed planning call. Kind is one of
// models.ErrTransport, models.ErrShape or models.ErrValidation, so callers
// can use errors.Is on either the kind or the underlying cause.
type PlanningError struct {
	Kind       error
	Op         string
	StatusCode int
	Err        error
}

func (e *PlanningError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *PlanningError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func transportError(op string, status int, err error) *PlanningError {
	return &PlanningError{Kind: models.ErrTransport, Op: op, StatusCode: status, Err: err}
}

func shapeError(op string, err error) *PlanningError {
	return &PlanningError{Kind: models.ErrShape, Op: op, Err: err}
}

// StatusCode returns the HTTP status carried by a transport error, or 0.
func StatusCode(err error) int {
	var pe *PlanningError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}

// Deps are the collaborators planners may need.
type Deps struct {
	Generator ContentGenerator
	Recorder  InteractionRecorder
	Logger    *zap.Logger
}

// New builds the planner selected by cfg.Planner.Mode.
func New(cfg *config.Config, deps Deps) (Planner, error) {
	switch cfg.Planner.Mode {
	case config.PlannerModeGemini:
		if deps.Generator == nil {
			return nil, errors.New("gemini planner needs a content generator")
		}
		return NewGeminiPlanner(deps.Generator, cfg.Planner.Gemini.Model, deps.Recorder, deps.Logger), nil
	case config.PlannerModeBackend:
		return NewBackendPlanner(cfg.Planner.BackendURL, deps.Logger, WithTimeout(cfg.Planner.Timeout)), nil
	default:
		return nil, fmt.Errorf("unknown planner mode %q", cfg.Planner.Mode)
	}
}
