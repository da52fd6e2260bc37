package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripPlanRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     TripPlanRequest
		wantErr bool
	}{
		{name: "defaults are valid", req: DefaultTripPlanRequest()},
		{name: "duration beyond form cap is still valid", req: TripPlanRequest{City: "Rome", DurationDays: 30, Interests: "food"}},
		{name: "blank city", req: TripPlanRequest{City: "  ", DurationDays: 2, Interests: "food"}, wantErr: true},
		{name: "zero duration", req: TripPlanRequest{City: "Rome", DurationDays: 0, Interests: "food"}, wantErr: true},
		{name: "negative duration", req: TripPlanRequest{City: "Rome", DurationDays: -1, Interests: "food"}, wantErr: true},
		{name: "blank interests", req: TripPlanRequest{City: "Rome", DurationDays: 2}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTripPlanRequest_InterestList(t *testing.T) {
	req := TripPlanRequest{Interests: "museums, local food,, history ,"}
	assert.Equal(t, []string{"museums", "local food", "history"}, req.InterestList())
}

func TestItinerary_Validate(t *testing.T) {
	assert.ErrorIs(t, Itinerary{City: "Paris"}.Validate(), ErrShape)
	assert.ErrorIs(t, Itinerary{ItineraryPlan: []DailyPlan{}}.Validate(), ErrShape)
	assert.ErrorIs(t, Itinerary{ItineraryPlan: []DailyPlan{{Day: 0}}}.Validate(), ErrShape)
	assert.ErrorIs(t, Itinerary{ItineraryPlan: []DailyPlan{{Day: 1}, {Day: 2}, {Day: 1}}}.Validate(), ErrShape)
	assert.NoError(t, Itinerary{ItineraryPlan: []DailyPlan{{Day: 1}, {Day: 3}}}.Validate())
}

func TestItinerary_DayLookup(t *testing.T) {
	it := Itinerary{ItineraryPlan: []DailyPlan{
		{Day: 1, Title: "Arrival"},
		{Day: 3, Title: "Museums"},
	}}

	plan, ok := it.Day(3)
	assert.True(t, ok)
	assert.Equal(t, "Museums", plan.Title)

	plan, ok = it.Day(2)
	assert.False(t, ok)
	assert.Empty(t, plan.Title)

	assert.Equal(t, []int{1, 3}, it.Days())
}

func TestActivityType_Valid(t *testing.T) {
	for _, typ := range ActivityTypes {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, ActivityType("restaurant").Valid())
	assert.False(t, ActivityType("").Valid())
}

func TestFormValues(t *testing.T) {
	req := TripPlanRequest{City: "Lisbon", DurationDays: 2, Interests: "fado"}

	assert.Equal(t, DefaultTripPlanRequest(), FormValues(Idle{Form: DefaultTripPlanRequest()}))
	assert.Equal(t, req, FormValues(Loading{Request: req}))
	assert.Equal(t, req, FormValues(Failure{Request: req, Message: GenericFailureMessage}))
	assert.Equal(t, req, FormValues(Success{Request: req}))
	assert.Equal(t, DefaultTripPlanRequest(), FormValues(nil))
}
