package llmlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists model interactions.
type Repository interface {
	SaveInteraction(ctx context.Context, interaction Interaction) (uuid.UUID, error)
}

// Interaction is one stored model call.
type Interaction struct {
	ID               uuid.UUID
	RequestID        uuid.UUID
	Intent           string
	CityName         string
	Prompt           string
	PromptHash       string
	ResponseText     string
	ModelUsed        string
	Provider         string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	LatencyMs        int
	StatusCode       int
	ErrorMessage     string
	CostEstimateUSD  float64
	Temperature      *float32
	GroundingSources int
	Timestamp        time.Time
}

// LoggingConfig describes the call being logged.
type LoggingConfig struct {
	RequestID   uuid.UUID
	Intent      string // "trip_plan"
	Prompt      string
	CityName    string
	ModelName   string
	Provider    string // defaults to "google"
	Temperature *float32
	RedactPII   bool // store only a hash of the prompt
}

// LLMResponse is what came back from the call.
type LLMResponse struct {
	ResponseText     string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	StatusCode       int // 200 on success
	ErrorMessage     string
	GroundingSources int
}
