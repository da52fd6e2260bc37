package views

import (
	"context"

	"github.com/a-h/templ"
)

// PollInterval is how often the loading view asks for the current state.
const PollInterval = "2s"

// LoadingView replaces itself with the current state every PollInterval
// until the planning call settles.
func LoadingView() templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.printf(`<div id="loading" class="text-center p-8 bg-white rounded-xl shadow-lg" hx-get="/trip/state" hx-trigger="every %s" hx-target="#planner" hx-swap="outerHTML" aria-busy="true">`, PollInterval)
		h.raw(`<div class="spinner mx-auto" role="status"></div>`)
		h.raw(`<p class="mt-4 text-lg font-semibold animate-pulse">Crafting your personalized itinerary...</p>`)
		h.raw(`<p class="text-sm text-gray-500">This might take a moment.</p>`)
		h.raw(`</div>`)
	})
}

// ErrorMessage shows msg with a button that submits the form again.
func ErrorMessage(msg string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="mt-6 bg-red-100 border-l-4 border-red-500 text-red-700 p-4 rounded-md shadow-md" role="alert">`)
		h.raw(`<p class="font-bold">An error occurred</p>`)
		h.printf(`<p>%s</p>`, attr(msg))
		h.raw(`<button type="button" class="mt-4 px-4 py-2 bg-red-500 text-white font-semibold rounded-lg hover:bg-red-600" hx-post="/trip/plan" hx-include="#trip-form" hx-target="#planner" hx-swap="outerHTML">Try Again</button>`)
		h.raw(`</div>`)
	})
}
