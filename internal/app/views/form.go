package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const (
	inputClass  = "mt-1 block w-full px-4 py-2 bg-gray-50 border border-gray-300 rounded-md shadow-sm focus:ring-blue-500 focus:border-blue-500"
	buttonClass = "w-full flex justify-center py-3 px-4 rounded-md shadow-sm text-lg font-semibold text-white bg-blue-600 hover:bg-blue-700"
)

// TripForm renders the planning form populated with req.
func TripForm(req models.TripPlanRequest) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="bg-white p-8 rounded-xl shadow-lg w-full">`)
		h.raw(`<form id="trip-form" class="space-y-6" hx-post="/trip/plan" hx-target="#planner" hx-swap="outerHTML" hx-disabled-elt="find button">`)

		h.raw(`<div><label for="city" class="block text-sm font-medium text-gray-700">Destination City</label>`)
		h.printf(`<input type="text" id="city" name="city" value="%s" class="%s" placeholder="e.g., Paris, France" required></div>`,
			attr(req.City), inputClass)

		h.raw(`<div><label for="duration_days" class="block text-sm font-medium text-gray-700">Duration (in days)</label>`)
		h.printf(`<input type="number" id="duration_days" name="duration_days" value="%s" min="1" max="%d" class="%s" required></div>`,
			durationValue(req.DurationDays), models.MaxFormDurationDays, inputClass)

		h.raw(`<div><label for="interests" class="block text-sm font-medium text-gray-700">Interests</label>`)
		h.printf(`<input type="text" id="interests" name="interests" value="%s" class="%s" placeholder="e.g., museums, local food, history" required>`,
			attr(req.Interests), inputClass)
		h.raw(`<p class="mt-1 text-xs text-gray-500">Comma-separated list of your interests.</p></div>`)

		h.printf(`<button type="submit" class="%s">Plan My Trip</button>`, buttonClass)
		h.raw(`</form></div>`)
	})
}

// durationValue leaves the input empty rather than showing a non-positive number.
func durationValue(d int) string {
	if d < 1 {
		return ""
	}
	return strconv.Itoa(d)
}

// ResetButton starts over from the default form.
func ResetButton(label string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		class := twmerge.Merge(buttonClass, "w-auto inline-flex px-6 py-2 text-base rounded-lg")
		h.raw(`<div class="mt-8 text-center">`)
		h.printf(`<button type="button" class="%s" hx-post="/trip/reset" hx-target="#planner" hx-swap="outerHTML">%s</button>`,
			class, attr(label))
		h.raw(`</div>`)
	})
}
