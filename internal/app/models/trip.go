package models

import (
	"fmt"
	"strings"
)

// Form defaults shown on every fresh page load.
const (
	DefaultCity         = "Paris, France"
	DefaultDurationDays = 3
	DefaultInterests    = "museums, local food, history"

	// MaxFormDurationDays caps the duration input; the core does not enforce it.
	MaxFormDurationDays = 14
)

// TripPlanRequest is what the user submits and what the planning client receives.
type TripPlanRequest struct {
	City         string `json:"city" form:"city"`
	DurationDays int    `json:"duration_days" form:"duration_days"`
	Interests    string `json:"interests" form:"interests"`
}

// DefaultTripPlanRequest returns the values the form starts with.
func DefaultTripPlanRequest() TripPlanRequest {
	return TripPlanRequest{
		City:         DefaultCity,
		DurationDays: DefaultDurationDays,
		Interests:    DefaultInterests,
	}
}

// Validate checks the request before it reaches a planner.
func (r TripPlanRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.City) == "":
		return fmt.Errorf("%w: city is required", ErrValidation)
	case r.DurationDays < 1:
		return fmt.Errorf("%w: duration_days must be at least 1, got %d", ErrValidation, r.DurationDays)
	case strings.TrimSpace(r.Interests) == "":
		return fmt.Errorf("%w: interests are required", ErrValidation)
	}
	return nil
}

// InterestList splits the comma separated interests, dropping blanks.
func (r TripPlanRequest) InterestList() []string {
	parts := strings.Split(r.Interests, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ActivityType classifies an activity; it drives the icon shown next to it.
type ActivityType string

const (
	ActivityFood     ActivityType = "food"
	ActivityMuseum   ActivityType = "museum"
	ActivityLandmark ActivityType = "landmark"
	ActivityWalk     ActivityType = "walk"
	ActivityEvent    ActivityType = "event"
	ActivityOther    ActivityType = "other"
)

// ActivityTypes lists every valid type.
var ActivityTypes = []ActivityType{
	ActivityFood, ActivityMuseum, ActivityLandmark, ActivityWalk, ActivityEvent, ActivityOther,
}

func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Activity struct {
	Time        string       `json:"time"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Type        ActivityType `json:"type"`
}

type DailyPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Source is a grounding citation the model used.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Itinerary is the full plan returned for one planning request.
type Itinerary struct {
	ItineraryPlan []DailyPlan `json:"itinerary_plan"`
	City          string      `json:"city"`
	DurationDays  int         `json:"duration_days"`
	Sources       []Source    `json:"sources"`
}

// Validate reports whether the itinerary is usable. An empty plan, a
// non-positive day number or a repeated day is a shape error.
func (it Itinerary) Validate() error {
	if len(it.ItineraryPlan) == 0 {
		return fmt.Errorf("%w: itinerary_plan is empty", ErrShape)
	}
	seen := make(map[int]struct{}, len(it.ItineraryPlan))
	for i, p := range it.ItineraryPlan {
		if p.Day < 1 {
			return fmt.Errorf("%w: itinerary_plan[%d] has day %d", ErrShape, i, p.Day)
		}
		if _, dup := seen[p.Day]; dup {
			return fmt.Errorf("%w: itinerary_plan[%d] repeats day %d", ErrShape, i, p.Day)
		}
		seen[p.Day] = struct{}{}
	}
	return nil
}

// Day finds the plan for day d. Days need not be contiguous.
func (it Itinerary) Day(d int) (DailyPlan, bool) {
	for _, p := range it.ItineraryPlan {
		if p.Day == d {
			return p, true
		}
	}
	return DailyPlan{}, false
}

// Days returns the day numbers in plan order, one per tab.
func (it Itinerary) Days() []int {
	days := make([]int, 0, len(it.ItineraryPlan))
	for _, p := range it.ItineraryPlan {
		days = append(days, p.Day)
	}
	return days
}

// ActivityCount is the number of activities across all days.
func (it Itinerary) ActivityCount() int {
	n := 0
	for _, p := range it.ItineraryPlan {
		n += len(p.Activities)
	}
	return n
}
