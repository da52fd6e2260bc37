package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const (
	AppTitle    = "Intelligent Trip Planner"
	AppSubtitle = "Craft your perfect journey with the power of AI"

	htmxScript = "https://unpkg.com/htmx.org@2.0.4"
)

// Layout is the page shell around Content.
func Layout(l models.LayoutTempl) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		title := l.Title
		if title == "" {
			title = AppTitle
		}
		subtitle := l.Subtitle
		if subtitle == "" {
			subtitle = AppSubtitle
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.printf(`<title>%s</title>`, attr(title))
		h.raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.printf(`<script src="%s" defer></script>`, htmxScript)
		h.raw(`<script src="/assets/js/app.js" defer></script>`)
		h.raw(`</head><body class="min-h-screen bg-gray-100 text-gray-900 font-sans">`)

		navBar(h, l.Nav, l.ActiveNav)

		h.raw(`<main class="container mx-auto px-4 py-8 md:py-16 flex flex-col items-center">`)
		h.raw(`<header class="text-center mb-10">`)
		h.printf(`<h1 class="text-4xl md:text-5xl font-extrabold text-blue-600">%s</h1>`, attr(AppTitle))
		h.printf(`<p class="mt-2 text-lg text-gray-600">%s</p>`, attr(subtitle))
		h.raw(`</header><div class="w-full max-w-2xl">`)
		h.child(ctx, l.Content)
		h.raw(`</div></main></body></html>`)
	})
}

func navBar(h *htmlWriter, nav models.Navigation, active string) {
	if len(nav.Items) == 0 {
		return
	}
	h.raw(`<nav class="flex justify-end gap-4 px-6 py-3 text-sm">`)
	for _, item := range nav.Items {
		class := "text-gray-500 hover:text-gray-800"
		if item.Name == active {
			class = twmerge.Merge(class, "text-blue-600 font-semibold")
		}
		h.printf(`<a href="%s" class="%s">%s</a>`, attr(item.URL), class, attr(item.Name))
	}
	h.raw(`</nav>`)
}
