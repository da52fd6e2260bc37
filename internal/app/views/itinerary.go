package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const (
	tabClass       = "whitespace-nowrap py-4 px-2 border-b-2 border-transparent font-medium text-sm text-gray-500 hover:text-gray-700 hover:border-gray-300"
	activeTabClass = "border-blue-500 text-blue-600 hover:text-blue-600 hover:border-blue-500"
)

// TabClass composes the classes for a day tab.
func TabClass(active bool) string {
	if active {
		return twmerge.Merge(tabClass, activeTabClass)
	}
	return tabClass
}

// ItineraryDisplay shows the header, one tab per day, the active day and
// the grounding sources.
func ItineraryDisplay(it models.Itinerary, activeDay int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		days := it.DurationDays
		if days < 1 {
			days = len(it.ItineraryPlan)
		}

		h.raw(`<div id="itinerary" class="bg-white rounded-xl shadow-lg overflow-hidden">`)
		h.raw(`<div class="p-6">`)
		h.printf(`<h2 class="text-2xl font-bold text-gray-800">Your Trip to %s</h2>`, attr(it.City))
		h.printf(`<p class="mt-1 text-md text-gray-600">A %d-day adventure powered by AI.</p>`, days)
		h.raw(`</div>`)

		h.raw(`<div class="border-b border-gray-200 px-4"><nav class="-mb-px flex space-x-4 overflow-x-auto" aria-label="Tabs" role="tablist">`)
		for _, plan := range it.ItineraryPlan {
			active := plan.Day == activeDay
			h.printf(`<button type="button" role="tab" class="%s" aria-selected="%t" data-day="%d" hx-get="/trip/day/%d" hx-target="#itinerary" hx-swap="outerHTML">Day %d</button>`,
				TabClass(active), active, plan.Day, plan.Day, plan.Day)
		}
		h.raw(`</nav></div>`)

		h.child(ctx, DayPanel(it, activeDay))

		if len(it.Sources) > 0 {
			h.raw(`<div id="sources" class="p-6 border-t border-gray-200 bg-gray-50">`)
			h.raw(`<h4 class="text-md font-semibold text-gray-700 mb-2">Information Sources</h4><ul class="space-y-1 text-sm">`)
			for _, s := range it.Sources {
				h.printf(`<li class="truncate"><a href="%s" target="_blank" rel="noopener noreferrer" class="text-blue-600 hover:underline" title="%s">%s</a></li>`,
					attr(string(templ.URL(s.URI))), attr(s.Title), attr(SourceLabel(s)))
			}
			h.raw(`</ul></div>`)
		}
		h.raw(`</div>`)
	})
}

// DayPanel is the body of one tab. A day absent from the plan renders an
// empty panel.
func DayPanel(it models.Itinerary, day int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.printf(`<div id="day-panel" class="p-6 min-h-[250px]" role="tabpanel" data-day="%d">`, day)
		if plan, ok := it.Day(day); ok {
			h.printf(`<h3 class="text-xl font-semibold mb-4 text-gray-800">%s</h3>`, attr(plan.Title))
			h.raw(`<div class="space-y-4">`)
			for _, a := range plan.Activities {
				h.printf(`<div class="activity flex items-start" data-type="%s">`, attr(string(a.Type)))
				iconSVG(h, ActivityIcon(a.Type), ActivityLabel(a.Type))
				h.raw(`<div class="flex-1">`)
				h.printf(`<p class="font-bold text-gray-800">%s - %s</p>`, attr(a.Time), attr(a.Description))
				h.printf(`<p class="text-sm text-gray-500">%s</p>`, attr(a.Location))
				h.raw(`</div></div>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}
