package llmlog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Ensure PostgresRepository implements the Repository interface
var _ Repository = (*PostgresRepository)(nil)

// Querier is the part of *pgxpool.Pool the repository uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	logger *zap.Logger
	pgpool Querier
	psql   sq.StatementBuilderType
}

func NewPostgresRepository(pgpool Querier, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) SaveInteraction(ctx context.Context, interaction Interaction) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LLMLogRepository").Start(ctx, "SaveInteraction")
	defer span.End()

	query, args, err := r.psql.
		Insert("llm_interactions").
		Columns(
			"request_id", "intent", "city_name", "prompt", "prompt_hash", "response_text",
			"model_name", "provider", "prompt_tokens", "completion_tokens", "total_tokens",
			"latency_ms", "status_code", "error_message", "cost_estimate_usd", "temperature",
			"grounding_sources", "created_at",
		).
		Values(
			interaction.RequestID, interaction.Intent, interaction.CityName, interaction.Prompt,
			interaction.PromptHash, interaction.ResponseText, interaction.ModelUsed, interaction.Provider,
			interaction.PromptTokens, interaction.CompletionTokens, interaction.TotalTokens,
			interaction.LatencyMs, interaction.StatusCode, interaction.ErrorMessage,
			interaction.CostEstimateUSD, interaction.Temperature, interaction.GroundingSources,
			interaction.Timestamp,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build insert")
		return uuid.Nil, fmt.Errorf("failed to build insert: %w", err)
	}

	var id uuid.UUID
	if err := r.pgpool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		r.logger.Error("Failed to insert LLM interaction",
			zap.String("request_id", interaction.RequestID.String()),
			zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return uuid.Nil, fmt.Errorf("failed to insert llm interaction: %w", err)
	}

	span.SetStatus(codes.Ok, "Interaction saved")
	return id, nil
}
