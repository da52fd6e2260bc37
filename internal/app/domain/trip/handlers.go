package trip

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/views"
)

const (
	// SessionName is the cookie holding the session.
	SessionName  = "trip_planner"
	sessionIDKey = "sid"
	pageTitle    = "Plan - Intelligent Trip Planner"
	navPlan      = "Plan"
)

// Handlers serves the planner UI.
type Handlers struct {
	*handlers.BaseHandler
	store *SessionStore
}

func NewHandlers(store *SessionStore, logger *zap.Logger) *Handlers {
	return &Handlers{BaseHandler: handlers.NewBaseHandler(logger), store: store}
}

// RegisterRoutes mounts the planner UI on r. planMiddleware runs before
// /trip/plan only, since that is the route that starts a model call.
func (h *Handlers) RegisterRoutes(r gin.IRoutes, planMiddleware ...gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.POST("/trip/plan", append(planMiddleware, h.Plan)...)
	r.GET("/trip/state", h.State)
	r.GET("/trip/day/:day", h.Day)
	r.POST("/trip/reset", h.Reset)
}

// orchestrator resolves the caller's session, minting an id on first visit.
func (h *Handlers) orchestrator(c *gin.Context) *Orchestrator {
	sess := sessions.Default(c)
	id, _ := sess.Get(sessionIDKey).(string)
	if id == "" {
		id = uuid.NewString()
		sess.Set(sessionIDKey, id)
		if err := sess.Save(); err != nil {
			h.Logger.Warn("Failed to save session", zap.Error(err))
		}
	}
	return h.store.GetOrCreate(id)
}

// Index renders the whole page for the current state.
func (h *Handlers) Index(c *gin.Context) {
	o := h.orchestrator(c)
	h.RenderPage(c, pageTitle, navPlan, views.StateView(o.State()))
}

// Plan submits the form. htmx gets the new state back; a plain form post
// is redirected to the page.
func (h *Handlers) Plan(c *gin.Context) {
	o := h.orchestrator(c)
	l := h.Logger.With(zap.String("method", "Plan"))

	var req models.TripPlanRequest
	if err := c.ShouldBind(&req); err != nil {
		// Unparseable fields are treated like any other invalid request.
		l.Debug("Could not bind trip form", zap.Error(err))
		req.DurationDays = 0
	}

	status := http.StatusOK
	if err := o.Submit(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, models.ErrPlanInFlight):
			status = http.StatusConflict
		case errors.Is(err, models.ErrValidation):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, models.ErrShuttingDown):
			status = http.StatusServiceUnavailable
		default:
			l.Error("Submit failed", zap.Error(err))
			status = http.StatusInternalServerError
		}
	}

	if !middleware.IsHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.Render(c, swappable(status), views.StateView(o.State()))
}

// State renders the planner block; the loading view polls it.
func (h *Handlers) State(c *gin.Context) {
	o := h.orchestrator(c)
	h.RenderPage(c, pageTitle, navPlan, views.StateView(o.State()))
}

// Day renders the itinerary with the given tab selected.
func (h *Handlers) Day(c *gin.Context) {
	o := h.orchestrator(c)
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid day")
		return
	}
	success, ok := o.State().(models.Success)
	if !ok {
		// The itinerary is gone; show whatever the session holds now.
		c.Header("HX-Retarget", "#planner")
		c.Header("HX-Reswap", "outerHTML")
		h.Render(c, http.StatusOK, views.StateView(o.State()))
		return
	}
	h.RenderPage(c, pageTitle, navPlan, views.ItineraryDisplay(success.Itinerary, day))
}

// Reset returns to the default form.
func (h *Handlers) Reset(c *gin.Context) {
	o := h.orchestrator(c)
	status := http.StatusOK
	if err := o.Reset(); err != nil {
		status = http.StatusConflict
	}
	if !middleware.IsHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.Render(c, swappable(status), views.StateView(o.State()))
}

// swappable folds the outcomes the state view already shows into 200, since
// htmx does not swap 4xx bodies. A request refused while a plan is running
// gets the loading view back and keeps polling.
func swappable(status int) int {
	switch status {
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return http.StatusOK
	}
	return status
}
