package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func TestBackendPlanner_Plan(t *testing.T) {
	req := models.DefaultTripPlanRequest()

	t.Run("posts the request and returns the itinerary", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, PlanTripPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

			var got models.TripPlanRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, req, got)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(parisJSON))
		}))
		defer srv.Close()

		p := NewBackendPlanner(srv.URL+"/", nil, WithUserAgent("test-agent"))
		assert.Equal(t, srv.URL+PlanTripPath, p.Endpoint())

		it, err := p.Plan(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Paris, France", it.City)
		assert.Equal(t, []int{1, 2, 3}, it.Days())
		assert.NotNil(t, it.Sources)
	})

	t.Run("server error is a transport error with status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Failed to generate itinerary: boom"}`))
		}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil).Plan(context.Background(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrTransport)
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
		assert.Contains(t, err.Error(), "API error: 500")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("non-json body is a shape error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway</html>"))
		}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrShape)
	})

	t.Run("empty body is a shape error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrShape)
	})

	t.Run("empty plan is a shape error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"city":"Paris","duration_days":3,"itinerary_plan":[]}`))
		}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrShape)
	})

	t.Run("repeated day is a shape error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"city":"Paris","duration_days":2,"itinerary_plan":[{"day":1,"title":"A"},{"day":1,"title":"B"}]}`))
		}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrShape)
		assert.Contains(t, err.Error(), "repeats day 1")
	})

	t.Run("unreachable backend is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewBackendPlanner(url, nil).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrTransport)
		assert.Equal(t, 0, StatusCode(err))
	})

	t.Run("timeout is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := NewBackendPlanner(srv.URL, nil, WithTimeout(20*time.Millisecond)).Plan(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrTransport)
	})
}

func TestNewBackendPlanner_DefaultURL(t *testing.T) {
	p := NewBackendPlanner("  ", nil)
	assert.Equal(t, "http://localhost:8080/api/plan-trip", p.Endpoint())
	assert.Equal(t, "backend(http://localhost:8080)", p.String())
}
