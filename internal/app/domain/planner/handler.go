package planner

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const serviceName = "AI Trip Planner API"

// Handler serves the JSON planning API consumed by the backend planner
// variant and by standalone frontends.
type Handler struct {
	planner Planner
	logger  *zap.Logger
}

// NewHandler wraps a planner. It must be a direct-model planner: a backend
// planner pointed at this service would call itself. A nil planner makes
// plan-trip answer 503.
func NewHandler(p Planner, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{planner: p, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

// PlanTrip binds a TripPlanRequest and answers with the itinerary.
func (h *Handler) PlanTrip(c *gin.Context) {
	ctx, span := otel.Tracer("PlannerHandler").Start(c.Request.Context(), "PlanTrip")
	defer span.End()

	l := h.logger.With(zap.String("method", "PlanTrip"))

	if h.planner == nil {
		span.SetStatus(codes.Error, "Planner not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "GEMINI_API_KEY environment variable is not set"})
		return
	}

	var req models.TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid body")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("city", req.City), attribute.Int("duration_days", req.DurationDays))

	it, err := h.planner.Plan(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Planning failed")
		l.Error("Error generating itinerary", zap.Error(err), zap.Bool("shape_error", errors.Is(err, models.ErrShape)))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate itinerary: " + err.Error()})
		return
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	c.JSON(http.StatusOK, it)
}

// RegisterRoutes mounts the API under g. Extra handlers (rate limiting)
// run in front of plan-trip only.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup, planMiddleware ...gin.HandlerFunc) {
	g.GET("/health", h.Health)
	g.POST("/plan-trip", append(planMiddleware, h.PlanTrip)...)
}
