package planner

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// Keywords that map free-form activity types onto the fixed set. Order
// matters only for the automaton's pattern indices.
var activityKeywords = []struct {
	word string
	typ  models.ActivityType
}{
	{"restaurant", models.ActivityFood},
	{"cafe", models.ActivityFood},
	{"café", models.ActivityFood},
	{"dining", models.ActivityFood},
	{"breakfast", models.ActivityFood},
	{"lunch", models.ActivityFood},
	{"dinner", models.ActivityFood},
	{"market", models.ActivityFood},
	{"bar", models.ActivityFood},
	{"culinary", models.ActivityFood},
	{"gallery", models.ActivityMuseum},
	{"exhibition", models.ActivityMuseum},
	{"art", models.ActivityMuseum},
	{"museum", models.ActivityMuseum},
	{"monument", models.ActivityLandmark},
	{"sight", models.ActivityLandmark},
	{"sightseeing", models.ActivityLandmark},
	{"cathedral", models.ActivityLandmark},
	{"church", models.ActivityLandmark},
	{"palace", models.ActivityLandmark},
	{"castle", models.ActivityLandmark},
	{"attraction", models.ActivityLandmark},
	{"historic", models.ActivityLandmark},
	{"tour", models.ActivityWalk},
	{"park", models.ActivityWalk},
	{"hike", models.ActivityWalk},
	{"stroll", models.ActivityWalk},
	{"walking", models.ActivityWalk},
	{"garden", models.ActivityWalk},
	{"concert", models.ActivityEvent},
	{"festival", models.ActivityEvent},
	{"show", models.ActivityEvent},
	{"theatre", models.ActivityEvent},
	{"theater", models.ActivityEvent},
	{"nightlife", models.ActivityEvent},
	{"performance", models.ActivityEvent},
}

var activityMatcher = func() ahocorasick.AhoCorasick {
	patterns := make([]string, len(activityKeywords))
	for i, k := range activityKeywords {
		patterns[i] = k.word
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	return builder.Build(patterns)
}()

// NormalizeActivityType maps a model-provided type onto the fixed set.
// Exact values pass through; anything else is classified by the first
// keyword it contains and falls back to "other".
func NormalizeActivityType(raw string) models.ActivityType {
	t := models.ActivityType(strings.ToLower(strings.TrimSpace(raw)))
	if t.Valid() {
		return t
	}
	matches := activityMatcher.FindAll(string(t))
	if len(matches) == 0 {
		return models.ActivityOther
	}
	return activityKeywords[matches[0].Pattern()].typ
}

// normalizeActivities rewrites every activity type in place.
func normalizeActivities(it *models.Itinerary) {
	for d := range it.ItineraryPlan {
		for a := range it.ItineraryPlan[d].Activities {
			act := &it.ItineraryPlan[d].Activities[a]
			act.Type = NormalizeActivityType(string(act.Type))
		}
	}
}
