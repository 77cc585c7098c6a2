package domain

import "errors"

// PromptType selects the prompt template for a generation request. It is
// intentionally open: unknown values pass the text through verbatim.
type PromptType string

const (
	PromptSummary PromptType = "summary"
	PromptGrammar PromptType = "grammar"
)

var ErrProvider = errors.New("ai provider error")

// Prompt builds the text sent to the provider for the given input.
func (p PromptType) Prompt(text string) string {
	switch p {
	case PromptSummary:
		return "Summarize this text in 2 sentences:\n" + text
	case PromptGrammar:
		return "Fix grammar and improve these sentences:\n" + text
	default:
		return text
	}
}

// ProviderError carries the message reported to clients when the provider
// call fails. It matches ErrProvider under errors.Is.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }
