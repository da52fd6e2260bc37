package llmlog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LLMLogger records model interactions. With a nil repository it only
// writes structured log lines.
type LLMLogger struct {
	logger *zap.Logger
	repo   Repository
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewLLMLogger(logger *zap.Logger, repo Repository) *LLMLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMLogger{
		logger: logger,
		repo:   repo,
	}
}

// Pricing per 1M tokens in USD.
// Source: https://ai.google.dev/pricing
var geminiPricing = map[string]struct {
	InputPer1M  float64
	OutputPer1M float64
}{
	"gemini-2.5-pro":   {InputPer1M: 1.25, OutputPer1M: 10.00},
	"gemini-2.5-flash": {InputPer1M: 0.30, OutputPer1M: 2.50},
	"gemini-2.0-flash": {InputPer1M: 0.10, OutputPer1M: 0.40},
	"gemini-1.5-flash": {InputPer1M: 0.075, OutputPer1M: 0.30},
}

// CalculateCost estimates the cost in USD of a call. Unknown models cost 0.
func CalculateCost(modelName string, promptTokens, completionTokens int) float64 {
	normalized := strings.ToLower(modelName)
	best := ""
	for key := range geminiPricing {
		// longest match wins so "gemini-2.5-flash-lite" doesn't pick a shorter key at random
		if strings.Contains(normalized, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return 0
	}
	pricing := geminiPricing[best]
	inputCost := (float64(promptTokens) / 1_000_000) * pricing.InputPer1M
	outputCost := (float64(completionTokens) / 1_000_000) * pricing.OutputPer1M
	return inputCost + outputCost
}

// HashPrompt returns a SHA256 hex digest of the prompt.
func HashPrompt(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}

// LogInteractionAsync records the interaction without blocking the caller.
// After Close it writes synchronously instead.
func (l *LLMLogger) LogInteractionAsync(ctx context.Context, config LoggingConfig, response LLMResponse, latencyMs int64) {
	asyncCtx := context.WithoutCancel(ctx)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		if err := l.logInteraction(asyncCtx, config, response, latencyMs); err != nil {
			l.logger.Error("Failed to log LLM interaction after close",
				zap.String("intent", config.Intent),
				zap.Error(err))
		}
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		if err := l.logInteraction(asyncCtx, config, response, latencyMs); err != nil {
			l.logger.Error("Failed to log LLM interaction asynchronously",
				zap.String("intent", config.Intent),
				zap.String("request_id", config.RequestID.String()),
				zap.Error(err))
		}
	}()
}

// LogInteractionSync records the interaction before returning.
func (l *LLMLogger) LogInteractionSync(ctx context.Context, config LoggingConfig, response LLMResponse, latencyMs int64) error {
	return l.logInteraction(ctx, config, response, latencyMs)
}

// Wait blocks until pending asynchronous writes finish.
func (l *LLMLogger) Wait() {
	l.wg.Wait()
}

// Close stops queueing writes in the background and waits for the queued ones.
func (l *LLMLogger) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *LLMLogger) logInteraction(ctx context.Context, config LoggingConfig, response LLMResponse, latencyMs int64) error {
	ctx, span := otel.Tracer("LLMLogger").Start(ctx, "logInteraction",
		trace.WithAttributes(
			attribute.String("intent", config.Intent),
			attribute.String("model", config.ModelName),
			attribute.Int64("latency_ms", latencyMs),
			attribute.Int("status_code", response.StatusCode),
		))
	defer span.End()

	interaction := buildInteraction(config, response, latencyMs)

	l.logger.Info("LLM interaction",
		zap.String("request_id", interaction.RequestID.String()),
		zap.String("intent", interaction.Intent),
		zap.String("model", interaction.ModelUsed),
		zap.Int("status_code", interaction.StatusCode),
		zap.Int("prompt_tokens", interaction.PromptTokens),
		zap.Int("completion_tokens", interaction.CompletionTokens),
		zap.Int("grounding_sources", interaction.GroundingSources),
		zap.Float64("cost_usd", interaction.CostEstimateUSD),
		zap.Int64("latency_ms", latencyMs))

	if l.repo == nil {
		return nil
	}

	savedID, err := l.repo.SaveInteraction(ctx, interaction)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save LLM interaction: %w", err)
	}
	span.SetAttributes(attribute.String("interaction_id", savedID.String()))
	return nil
}

func buildInteraction(config LoggingConfig, response LLMResponse, latencyMs int64) Interaction {
	provider := config.Provider
	if provider == "" {
		provider = "google"
	}
	requestID := config.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.New()
	}

	interaction := Interaction{
		RequestID:        requestID,
		Intent:           config.Intent,
		CityName:         config.CityName,
		Prompt:           config.Prompt,
		ResponseText:     response.ResponseText,
		ModelUsed:        config.ModelName,
		Provider:         provider,
		PromptTokens:     response.PromptTokens,
		CompletionTokens: response.CompletionTokens,
		TotalTokens:      response.TotalTokens,
		LatencyMs:        int(latencyMs),
		StatusCode:       response.StatusCode,
		ErrorMessage:     response.ErrorMessage,
		CostEstimateUSD:  CalculateCost(config.ModelName, response.PromptTokens, response.CompletionTokens),
		Temperature:      config.Temperature,
		GroundingSources: response.GroundingSources,
		Timestamp:        time.Now().UTC(),
	}
	if config.RedactPII {
		interaction.PromptHash = HashPrompt(config.Prompt)
		interaction.Prompt = ""
	}
	return interaction
}
