package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/llmlog"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/debugger"
)

const intentTripPlan = "trip_plan"

// ContentGenerator is the slice of the genai client the planner calls.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// InteractionRecorder receives one record per model call.
type InteractionRecorder interface {
	LogInteractionAsync(ctx context.Context, config llmlog.LoggingConfig, response llmlog.LLMResponse, latencyMs int64)
}

// NewGenAIClient connects to the Gemini API.
func NewGenAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// GeminiPlanner asks the model directly, with Google Search grounding.
type GeminiPlanner struct {
	generator   ContentGenerator
	model       string
	temperature *float32
	recorder    InteractionRecorder
	logger      *zap.Logger
}

var _ Planner = (*GeminiPlanner)(nil)

func NewGeminiPlanner(generator ContentGenerator, model string, recorder InteractionRecorder, logger *zap.Logger) *GeminiPlanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiPlanner{
		generator:   generator,
		model:       model,
		temperature: genai.Ptr[float32](0.7),
		recorder:    recorder,
		logger:      logger,
	}
}

// GenerateConfig is the request configuration sent with every call.
func (p *GeminiPlanner) GenerateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(), genai.RoleUser),
		Temperature:       p.temperature,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}

func (p *GeminiPlanner) Plan(ctx context.Context, req models.TripPlanRequest) (models.Itinerary, error) {
	ctx, span := otel.Tracer("GeminiPlanner").Start(ctx, "Plan", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.Int("duration_days", req.DurationDays),
		attribute.String("model", p.model),
	))
	defer span.End()

	l := p.logger.With(zap.String("method", "GeminiPlanner.Plan"), zap.String("city", req.City))

	prompt := UserPrompt(req)
	logCfg := llmlog.LoggingConfig{
		RequestID:   uuid.New(),
		Intent:      intentTripPlan,
		Prompt:      prompt,
		CityName:    req.City,
		ModelName:   p.model,
		Provider:    "google",
		Temperature: p.temperature,
	}
	llmResp := llmlog.LLMResponse{StatusCode: 200}
	start := time.Now()
	defer func() {
		if p.recorder != nil {
			p.recorder.LogInteractionAsync(ctx, logCfg, llmResp, time.Since(start).Milliseconds())
		}
	}()

	resp, err := p.generator.GenerateContent(ctx, p.model, genai.Text(prompt), p.GenerateConfig())
	if err != nil {
		llmResp.StatusCode = statusFromAPIError(err)
		llmResp.ErrorMessage = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		l.Error("Model call failed", zap.Error(err))
		return models.Itinerary{}, transportError("gemini.generate", llmResp.StatusCode, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		err := errors.New("model returned no candidates")
		llmResp.StatusCode = 500
		llmResp.ErrorMessage = err.Error()
		span.SetStatus(codes.Error, "Empty response")
		return models.Itinerary{}, shapeError("gemini.response", err)
	}

	recordUsage(ctx, resp, &llmResp)
	text := resp.Text()
	llmResp.ResponseText = text

	it, err := ParseItinerary(text)
	if err != nil {
		llmResp.StatusCode = 422
		llmResp.ErrorMessage = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unparseable itinerary")
		l.Warn("Model output failed to parse", zap.Error(err), zap.Int("response_length", len(text)))
		debugger.LogModelOutput(l, p.model, text)
		return models.Itinerary{}, shapeError("gemini.parse", err)
	}

	normalizeActivities(&it)
	it.Sources = ExtractSources(resp)
	llmResp.GroundingSources = len(it.Sources)

	span.SetAttributes(
		attribute.Int("itinerary.days", len(it.ItineraryPlan)),
		attribute.Int("itinerary.sources", len(it.Sources)),
	)
	span.SetStatus(codes.Ok, "Itinerary generated")
	l.Info("Itinerary generated",
		zap.Int("days", len(it.ItineraryPlan)),
		zap.Int("activities", it.ActivityCount()),
		zap.Int("sources", len(it.Sources)))
	return it, nil
}

// ExtractSources maps the first candidate's grounding chunks onto sources,
// skipping chunks without a usable web URI.
func ExtractSources(resp *genai.GenerateContentResponse) []models.Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return []models.Source{}
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return []models.Source{}
	}
	sources := make([]models.Source, 0, len(gm.GroundingChunks))
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, models.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return dedupeSources(sources)
}

func recordUsage(ctx context.Context, resp *genai.GenerateContentResponse, out *llmlog.LLMResponse) {
	if resp.UsageMetadata == nil {
		return
	}
	out.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
	out.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	out.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	metrics.Get().LLMTokensTotal.Add(ctx, int64(out.TotalTokens),
		metric.WithAttributes(attribute.String("kind", "total")))
}

func statusFromAPIError(err error) int {
	// The client returns APIError by value.
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr.Code != 0 {
		return apiErrPtr.Code
	}
	return 500
}

// String identifies the planner in logs.
func (p *GeminiPlanner) String() string {
	return fmt.Sprintf("gemini(%s)", p.model)
}
