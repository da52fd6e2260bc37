package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func TestNormalizeActivityType(t *testing.T) {
	tests := map[string]models.ActivityType{
		"food":             models.ActivityFood,
		"  Museum ":        models.ActivityMuseum,
		"LANDMARK":         models.ActivityLandmark,
		"restaurant":       models.ActivityFood,
		"Art Gallery":      models.ActivityMuseum,
		"walking tour":     models.ActivityWalk,
		"evening concert":  models.ActivityEvent,
		"Cathedral visit":  models.ActivityLandmark,
		"shopping":         models.ActivityOther,
		"":                 models.ActivityOther,
		"barbershop":       models.ActivityOther,
		"sightseeing trip": models.ActivityLandmark,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeActivityType(in), "input %q", in)
	}
}

func TestNormalizeActivities(t *testing.T) {
	it := models.Itinerary{ItineraryPlan: []models.DailyPlan{
		{Day: 1, Activities: []models.Activity{{Type: "Dinner"}, {Type: "walk"}}},
		{Day: 2, Activities: []models.Activity{{Type: "spa"}}},
	}}
	normalizeActivities(&it)

	assert.Equal(t, models.ActivityFood, it.ItineraryPlan[0].Activities[0].Type)
	assert.Equal(t, models.ActivityWalk, it.ItineraryPlan[0].Activities[1].Type)
	assert.Equal(t, models.ActivityOther, it.ItineraryPlan[1].Activities[0].Type)
}
