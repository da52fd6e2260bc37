package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const parisJSON = `{
  "city": "Paris, France",
  "duration_days": 3,
  "itinerary_plan": [
    {"day": 1, "title": "Arrival", "activities": [{"time": "9:00 AM", "description": "Croissants", "location": "Le Marais", "type": "food"}]},
    {"day": 2, "title": "Art", "activities": []},
    {"day": 3, "title": "Walks", "activities": []}
  ]
}`

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `  {"a":1}  `, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around fence", in: "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!", want: `{"a":1}`},
		{name: "unterminated fence", in: "```json\n{\"a\":1}", want: `{"a":1}`},
		{name: "single line fence", in: "```{\"a\":1}```", want: `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFence(tc.in))
		})
	}
}

func TestParseItinerary(t *testing.T) {
	t.Run("fenced object", func(t *testing.T) {
		it, err := ParseItinerary("```json\n" + parisJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Paris, France", it.City)
		assert.Equal(t, 3, it.DurationDays)
		assert.Equal(t, []int{1, 2, 3}, it.Days())
		assert.NotNil(t, it.Sources)
		assert.Empty(t, it.Sources)
	})

	t.Run("object wrapped in prose", func(t *testing.T) {
		it, err := ParseItinerary("Sure! " + parisJSON + " Have fun.")
		require.NoError(t, err)
		assert.Len(t, it.ItineraryPlan, 3)
	})

	t.Run("failures are shape errors", func(t *testing.T) {
		for _, in := range []string{
			"",
			"I cannot help with that.",
			`{"city": "Paris", "itinerary_plan": []}`,
			`{"city": "Paris"}`,
			`{"itinerary_plan": [{"day": 0}]}`,
			`{"itinerary_plan": [{"day": 1, "title": "A"}, {"day": 1, "title": "B"}]}`,
			"```json\n{not json}\n```",
		} {
			_, err := ParseItinerary(in)
			assert.ErrorIs(t, err, models.ErrShape, in)
		}
	})
}

func TestDedupeSources(t *testing.T) {
	got := dedupeSources([]models.Source{
		{URI: "https://a.example.com/x", Title: "A"},
		{URI: "", Title: "blank"},
		{URI: "not a url", Title: "junk"},
		{URI: "ftp://files.example.com", Title: "ftp"},
		{URI: "https://a.example.com/x", Title: "A again"},
		{URI: "http://b.example.com", Title: ""},
	})
	assert.Equal(t, []models.Source{
		{URI: "https://a.example.com/x", Title: "A"},
		{URI: "http://b.example.com", Title: ""},
	}, got)
}
