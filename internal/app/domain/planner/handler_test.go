package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

type stubPlanner struct {
	it    models.Itinerary
	err   error
	calls int
}

func (s *stubPlanner) Plan(_ context.Context, _ models.TripPlanRequest) (models.Itinerary, error) {
	s.calls++
	return s.it, s.err
}

func newAPIRouter(p Planner, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(p, nil).RegisterRoutes(r.Group("/api"), mw...)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Health(t *testing.T) {
	w := doJSON(newAPIRouter(nil), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"AI Trip Planner API"}`, w.Body.String())
}

func TestHandler_PlanTrip(t *testing.T) {
	valid := `{"city":"Paris, France","duration_days":3,"interests":"museums"}`

	t.Run("success", func(t *testing.T) {
		it, err := ParseItinerary(parisJSON)
		require.NoError(t, err)
		stub := &stubPlanner{it: it}

		w := doJSON(newAPIRouter(stub), http.MethodPost, "/api/plan-trip", valid)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Itinerary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, it, got)
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("bad body", func(t *testing.T) {
		stub := &stubPlanner{}
		w := doJSON(newAPIRouter(stub), http.MethodPost, "/api/plan-trip", `{"city":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
		assert.Zero(t, stub.calls)
	})

	t.Run("invalid request", func(t *testing.T) {
		stub := &stubPlanner{}
		w := doJSON(newAPIRouter(stub), http.MethodPost, "/api/plan-trip", `{"city":"","duration_days":3,"interests":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, stub.calls)
	})

	t.Run("planner failure", func(t *testing.T) {
		stub := &stubPlanner{err: transportError("gemini.generate", 503, fmt.Errorf("overloaded"))}
		w := doJSON(newAPIRouter(stub), http.MethodPost, "/api/plan-trip", valid)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, strings.HasPrefix(body["detail"], "Failed to generate itinerary: "))
	})

	t.Run("no planner configured", func(t *testing.T) {
		w := doJSON(newAPIRouter(nil), http.MethodPost, "/api/plan-trip", valid)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		it, _ := ParseItinerary(parisJSON)
		stub := &stubPlanner{it: it}
		rl := middleware.NewRateLimiter(nil, 0.001, 1)
		r := newAPIRouter(stub, rl.Middleware())

		assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/plan-trip", valid).Code)
		w := doJSON(r, http.MethodPost, "/api/plan-trip", valid)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, 1, stub.calls)

		// health is never limited
		assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/health", "").Code)
	})
}
