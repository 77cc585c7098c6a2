package ports

import (
	"context"

	"github.com/smartblog/editor-api/internal/core/domain"
)

// TextGenerator is the external text-generation provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIService turns editor text into generated text under a prompt template.
type AIService interface {
	Generate(ctx context.Context, text string, promptType domain.PromptType) (string, error)
}
