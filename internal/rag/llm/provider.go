package llm

import "context"

// Options tunes one generation call.
type Options struct {
	Temperature float64
	MaxTokens   int64
}

// Provider drives an external chat-completion service. The composer owns the
// prompts; implementations only move text.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string, opts Options) (string, error)
}
