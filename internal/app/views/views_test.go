package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func parisItinerary() models.Itinerary {
	return models.Itinerary{
		City:         "Paris, France",
		DurationDays: 3,
		ItineraryPlan: []models.DailyPlan{
			{Day: 1, Title: "Arrival and the Marais", Activities: []models.Activity{
				{Time: "9:00 AM", Description: "Breakfast at a bakery", Location: "Le Marais", Type: models.ActivityFood},
				{Time: "11:00 AM", Description: "Picasso Museum", Location: "5 Rue de Thorigny", Type: models.ActivityMuseum},
			}},
			{Day: 2, Title: "Icons", Activities: []models.Activity{
				{Time: "10:00 AM", Description: "Eiffel Tower", Location: "Champ de Mars", Type: models.ActivityLandmark},
				{Time: "8:00 PM", Description: "Jazz night", Location: "Caveau de la Huchette", Type: models.ActivityEvent},
			}},
			{Day: 3, Title: "Parks", Activities: []models.Activity{
				{Time: "2:00 PM", Description: "Stroll", Location: "Jardin du Luxembourg", Type: models.ActivityWalk},
			}},
		},
		Sources: []models.Source{},
	}
}

func TestItineraryDisplay(t *testing.T) {
	doc := render(t, ItineraryDisplay(parisItinerary(), 1))

	assert.Equal(t, "Your Trip to Paris, France", doc.Find("h2").Text())
	assert.Equal(t, "A 3-day adventure powered by AI.", doc.Find("#itinerary > div > p").First().Text())

	tabs := doc.Find(`[role="tab"]`)
	require.Equal(t, 3, tabs.Length())
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3"}, tabs.Map(func(_ int, s *goquery.Selection) string { return s.Text() }))

	active := doc.Find(`[role="tab"][aria-selected="true"]`)
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Day 1", active.Text())
	assert.Contains(t, active.AttrOr("class", ""), "border-blue-500")
	assert.NotContains(t, active.AttrOr("class", ""), "border-transparent")
	assert.Equal(t, "/trip/day/2", tabs.Eq(1).AttrOr("hx-get", ""))

	assert.Equal(t, "Arrival and the Marais", doc.Find("#day-panel h3").Text())
	activities := doc.Find("#day-panel .activity")
	require.Equal(t, 2, activities.Length())
	assert.Equal(t, "9:00 AM - Breakfast at a bakery", activities.First().Find("p.font-bold").Text())
	assert.Equal(t, "Le Marais", activities.First().Find("p.text-sm").Text())
	assert.Equal(t, "food", activities.First().Find("svg").AttrOr("data-icon", ""))

	assert.Zero(t, doc.Find("#sources").Length(), "no sources section when there are no sources")
}

func TestItineraryDisplay_SelectsOtherDay(t *testing.T) {
	doc := render(t, ItineraryDisplay(parisItinerary(), 2))

	assert.Equal(t, "Day 2", doc.Find(`[role="tab"][aria-selected="true"]`).Text())
	assert.Equal(t, "Icons", doc.Find("#day-panel h3").Text())
	assert.Equal(t, "globe", doc.Find(`#day-panel .activity[data-type="event"] svg`).AttrOr("data-icon", ""))
}

func TestItineraryDisplay_Sources(t *testing.T) {
	it := parisItinerary()
	it.Sources = []models.Source{
		{URI: "https://en.parisinfo.com/", Title: "Paris Tourist Office"},
		{URI: "https://example.com/a", Title: ""},
	}
	doc := render(t, ItineraryDisplay(it, 1))

	assert.Equal(t, "Information Sources", doc.Find("#sources h4").Text())
	links := doc.Find("#sources a")
	require.Equal(t, 2, links.Length())
	assert.Equal(t, "Paris Tourist Office", links.Eq(0).Text())
	assert.Equal(t, "example.com", links.Eq(1).Text())
	assert.Equal(t, "https://example.com/a", links.Eq(1).AttrOr("href", ""))
	assert.Equal(t, "_blank", links.Eq(1).AttrOr("target", ""))
}

func TestDayPanel_MissingDayIsEmpty(t *testing.T) {
	doc := render(t, DayPanel(parisItinerary(), 7))

	panel := doc.Find("#day-panel")
	require.Equal(t, 1, panel.Length())
	assert.Zero(t, panel.Children().Length())
}

func TestItineraryDisplay_EscapesModelText(t *testing.T) {
	it := parisItinerary()
	it.City = `<script>alert(1)</script>`
	var buf bytes.Buffer
	require.NoError(t, ItineraryDisplay(it, 1).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestTripForm(t *testing.T) {
	doc := render(t, TripForm(models.DefaultTripPlanRequest()))

	form := doc.Find("form#trip-form")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, "/trip/plan", form.AttrOr("hx-post", ""))
	assert.Equal(t, "Paris, France", doc.Find(`input[name="city"]`).AttrOr("value", ""))
	assert.Equal(t, "museums, local food, history", doc.Find(`input[name="interests"]`).AttrOr("value", ""))

	duration := doc.Find(`input[name="duration_days"]`)
	assert.Equal(t, "3", duration.AttrOr("value", ""))
	assert.Equal(t, "1", duration.AttrOr("min", ""))
	assert.Equal(t, "14", duration.AttrOr("max", ""))
	assert.Equal(t, "Plan My Trip", doc.Find("button[type=submit]").Text())
}

func TestStateView(t *testing.T) {
	req := models.TripPlanRequest{City: "Rome", DurationDays: 2, Interests: "pasta"}

	t.Run("idle", func(t *testing.T) {
		doc := render(t, StateView(models.Idle{Form: models.DefaultTripPlanRequest()}))
		assert.Equal(t, "idle", doc.Find("#planner").AttrOr("data-phase", ""))
		assert.Equal(t, 1, doc.Find("form#trip-form").Length())
		assert.Zero(t, doc.Find("#loading").Length())
	})

	t.Run("loading", func(t *testing.T) {
		doc := render(t, StateView(models.Loading{Request: req}))
		loading := doc.Find("#loading")
		require.Equal(t, 1, loading.Length())
		assert.Equal(t, "/trip/state", loading.AttrOr("hx-get", ""))
		assert.Equal(t, "every 2s", loading.AttrOr("hx-trigger", ""))
		assert.Contains(t, loading.Text(), "Crafting your personalized itinerary...")
		assert.Zero(t, doc.Find("form").Length())
		assert.Zero(t, doc.Find("#itinerary").Length())
	})

	t.Run("failure re-populates the form", func(t *testing.T) {
		doc := render(t, StateView(models.Failure{Request: req, Message: models.GenericFailureMessage}))
		alert := doc.Find(`[role="alert"]`)
		require.Equal(t, 1, alert.Length())
		assert.Contains(t, alert.Text(), models.GenericFailureMessage)
		assert.Equal(t, "Try Again", alert.Find("button").Text())
		assert.Equal(t, "Rome", doc.Find(`input[name="city"]`).AttrOr("value", ""))
		assert.Zero(t, doc.Find("#itinerary").Length())
	})

	t.Run("success", func(t *testing.T) {
		doc := render(t, StateView(models.Success{Request: req, Itinerary: parisItinerary()}))
		assert.Equal(t, 1, doc.Find("#itinerary").Length())
		assert.Zero(t, doc.Find(`[role="alert"]`).Length())
		assert.Zero(t, doc.Find("form").Length())
		assert.Equal(t, "/trip/reset", doc.Find(`button[hx-post="/trip/reset"]`).AttrOr("hx-post", ""))
	})
}

func TestLayout(t *testing.T) {
	doc := render(t, Layout(models.LayoutTempl{
		Title:     "Plan - Trip Planner",
		Nav:       models.MainNav,
		ActiveNav: "Plan",
		Content:   TripForm(models.DefaultTripPlanRequest()),
	}))

	assert.Equal(t, "Plan - Trip Planner", doc.Find("title").Text())
	assert.Equal(t, AppTitle, doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find("main form#trip-form").Length())
	assert.Equal(t, 1, doc.Find(`link[href="/assets/css/app.css"]`).Length())
	assert.Contains(t, doc.Find(`nav a[href="/"]`).AttrOr("class", ""), "text-blue-600")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Guide", SourceLabel(models.Source{URI: "https://example.com/x", Title: " Guide "}))
	assert.Equal(t, "example.com", SourceLabel(models.Source{URI: "https://example.com/x"}))
	assert.Equal(t, "not a url", SourceLabel(models.Source{URI: "not a url"}))

	assert.Equal(t, "globe", ActivityIcon(models.ActivityOther))
	assert.Equal(t, "globe", ActivityIcon(models.ActivityEvent))
	assert.Equal(t, "walk", ActivityIcon(models.ActivityWalk))
	assert.Equal(t, "Museum", ActivityLabel(models.ActivityMuseum))
	assert.Equal(t, "Other", ActivityLabel(""))

	assert.Equal(t, 1, DefaultActiveDay(parisItinerary()))
	assert.Equal(t, 4, DefaultActiveDay(models.Itinerary{ItineraryPlan: []models.DailyPlan{{Day: 4}, {Day: 5}}}))
	assert.Equal(t, 1, DefaultActiveDay(models.Itinerary{}))
}
