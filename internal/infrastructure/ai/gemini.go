// Package ai adapts the Gemini SDK to the text generation port.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/smartblog/editor-api/internal/core/domain"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/"
	DefaultModel   = "gemini-2.5-flash"
	apiVersion     = "v1beta"
	defaultTimeout = 60 * time.Second

	// EmptyResponseText is returned when the provider answers without text.
	EmptyResponseText = "[AI] Could not generate response."
)

// Config captures the provider settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiClient implements ports.TextGenerator. It makes exactly one request
// per call.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", providerError(err)
	}

	if text := candidateText(resp); text != "" {
		return text, nil
	}
	return EmptyResponseText, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// providerError keeps the provider's own message for API errors and wraps
// everything else as a service failure.
func providerError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return rejected(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return rejected(*apiErrPtr, err)
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return &domain.ProviderError{Message: "AI Service Failed: " + err.Error(), Err: err}
}

func rejected(apiErr genai.APIError, err error) error {
	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Status
	}
	return &domain.ProviderError{Message: "AI Provider Error: " + msg, Err: err}
}
