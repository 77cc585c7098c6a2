package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/api/metrics"
	"github.com/smartblog/editor-api/internal/core/domain"
	"github.com/smartblog/editor-api/internal/core/ports"
)

// MockGeneratedText is returned when no provider credential is configured.
const MockGeneratedText = "[MOCK AI - No Key] Please add GENAI_API_KEY to .env"

type AIService struct {
	provider ports.TextGenerator
	log      zerolog.Logger
}

// NewAIService returns an AIService. A nil provider puts the service in
// mock mode.
func NewAIService(provider ports.TextGenerator, log zerolog.Logger) *AIService {
	return &AIService{provider: provider, log: log}
}

func (s *AIService) Generate(ctx context.Context, text string, promptType domain.PromptType) (string, error) {
	if promptType == "" {
		promptType = domain.PromptSummary
	}
	label := promptLabel(promptType)

	if s.provider == nil {
		metrics.AIGenerationsTotal.WithLabelValues(label, "mock").Inc()
		return MockGeneratedText, nil
	}

	start := time.Now()
	out, err := s.provider.Generate(ctx, promptType.Prompt(text))
	metrics.AIGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues(label, "error").Inc()
		s.log.Error().Err(err).Str("prompt_type", string(promptType)).Msg("ai generation failed")
		return "", err
	}

	metrics.AIGenerationsTotal.WithLabelValues(label, "ok").Inc()
	return out, nil
}

// promptLabel bounds metric cardinality for the open prompt type.
func promptLabel(p domain.PromptType) string {
	switch p {
	case domain.PromptSummary, domain.PromptGrammar:
		return string(p)
	default:
		return "passthrough"
	}
}
