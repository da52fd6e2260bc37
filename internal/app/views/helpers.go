package views

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// SourceLabel is the link text for a source: its title, or the host of its URI.
func SourceLabel(s models.Source) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	u, err := url.Parse(s.URI)
	if err != nil || u.Hostname() == "" {
		return s.URI
	}
	return u.Hostname()
}

// ActivityIcon returns the icon name for an activity type. Types without
// their own icon use the globe.
func ActivityIcon(t models.ActivityType) string {
	switch t {
	case models.ActivityFood:
		return "food"
	case models.ActivityMuseum:
		return "museum"
	case models.ActivityLandmark:
		return "landmark"
	case models.ActivityWalk:
		return "walk"
	default:
		return "globe"
	}
}

// ActivityLabel is the human label for an activity type.
func ActivityLabel(t models.ActivityType) string {
	if t == "" {
		t = models.ActivityOther
	}
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(string(t))
}

// DefaultActiveDay is the tab selected when an itinerary is first shown:
// day 1 when the plan has it, otherwise the first day listed.
func DefaultActiveDay(it models.Itinerary) int {
	if _, ok := it.Day(1); ok {
		return 1
	}
	if len(it.ItineraryPlan) > 0 {
		return it.ItineraryPlan[0].Day
	}
	return 1
}
