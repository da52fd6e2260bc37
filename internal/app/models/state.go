package models

import "time"

// GenericFailureMessage is the only failure text users see.
const GenericFailureMessage = "Failed to generate itinerary. Please try again later."

// Phase names the variant a TripState holds.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// TripState is one of Idle, Loading, Success or Failure. Each variant carries
// only the data valid in that phase, so an itinerary and an error message can
// never be shown together.
type TripState interface {
	Phase() Phase
	tripState()
}

// Idle shows the form with the given values.
type Idle struct {
	Form TripPlanRequest
}

// Loading means exactly one planning call is outstanding.
type Loading struct {
	Request   TripPlanRequest
	StartedAt time.Time
}

type Success struct {
	Request   TripPlanRequest
	Itinerary Itinerary
}

// Failure keeps the submitted request so the form can be re-populated.
type Failure struct {
	Request TripPlanRequest
	Message string
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Loading) Phase() Phase { return PhaseLoading }
func (Success) Phase() Phase { return PhaseSuccess }
func (Failure) Phase() Phase { return PhaseFailure }

func (Idle) tripState()    {}
func (Loading) tripState() {}
func (Success) tripState() {}
func (Failure) tripState() {}

// FormValues returns what the form should show for state s.
func FormValues(s TripState) TripPlanRequest {
	switch st := s.(type) {
	case Idle:
		return st.Form
	case Loading:
		return st.Request
	case Success:
		return st.Request
	case Failure:
		return st.Request
	}
	return DefaultTripPlanRequest()
}
