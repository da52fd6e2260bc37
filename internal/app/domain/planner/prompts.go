package planner

import (
	"fmt"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const systemInstruction = `You are an expert trip planner. Your task is to create a detailed, day-by-day travel itinerary. Use your access to Google Search to find real-time information about the destination, including weather, local events, popular attractions, and restaurant recommendations. The itinerary should be logical, enjoyable, and tailored to the user's specified interests.

Your entire response must be a single, valid JSON object. Do not include any markdown formatting like ` + "```json" + ` or any other text outside of the JSON.

The JSON structure should be:
- A root object with keys: "itinerary_plan", "city", "duration_days".
- "itinerary_plan" should be an array of objects, each representing a day.
- Each day object should have keys: "day" (number), "title" (string), and "activities" (an array).
- Each activity object in the "activities" array should have keys: "time" (string), "description" (string), "location" (string), and "type" (one of 'food', 'museum', 'landmark', 'walk', 'event', 'other').`

// SystemInstruction is sent with every direct-model call.
func SystemInstruction() string {
	return systemInstruction
}

// UserPrompt embeds the request into the per-call prompt.
func UserPrompt(req models.TripPlanRequest) string {
	return fmt.Sprintf(`Please generate a trip plan based on the following details. Use Google Search to make the plan relevant, up-to-date, and engaging.

**Destination:** %s
**Duration:** %d days
**Interests:** %s

Create a unique and exciting itinerary based on this information.`, req.City, req.DurationDays, req.Interests)
}
