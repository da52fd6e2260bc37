package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// StateView renders the planner block for s. It is the swap target of every
// planner interaction, so it always carries the #planner id.
func StateView(s models.TripState) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		phase := models.PhaseIdle
		if s != nil {
			phase = s.Phase()
		}
		h.printf(`<section id="planner" data-phase="%s">`, phase)

		switch st := s.(type) {
		case models.Loading:
			h.child(ctx, LoadingView())
		case models.Success:
			h.child(ctx, ItineraryDisplay(st.Itinerary, DefaultActiveDay(st.Itinerary)))
			h.child(ctx, ResetButton("Plan Another Trip"))
		case models.Failure:
			h.child(ctx, TripForm(st.Request))
			h.child(ctx, ErrorMessage(st.Message))
		case models.Idle:
			h.child(ctx, TripForm(st.Form))
		default:
			h.child(ctx, TripForm(models.DefaultTripPlanRequest()))
		}

		h.raw(`</section>`)
	})
}
