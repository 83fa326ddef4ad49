package groq

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/askmynotes/notes-api/internal/customHttpClient"
	"github.com/askmynotes/notes-api/internal/rag/llm"
	"github.com/askmynotes/notes-api/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Groq exposes an OpenAI-compatible chat completion API, so the openai client
// pointed at the Groq base URL is the whole integration.
type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

func GetGroqClient(baseURL string, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		newGroqClient(baseURL, apikey, modelName)
	})

	if groqClient == nil {
		return nil
	}
	return &llmClient{client: groqClient.client, modelName: groqClient.modelName}
}

func newGroqClient(baseURL string, apikey string, modelName string) {
	if apikey == "" {
		logger.Error("Groq API key is empty")
		return
	}
	c := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(customHttpClient.PooledClient()),
	)
	groqClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Groq client created", "model", modelName)
}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error) {
	result, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.modelName),
		Temperature: openai.Float(opts.Temperature),
		MaxTokens:   openai.Int(opts.MaxTokens),
	})
	if err != nil {
		logger.Error("Groq completion failed", "error", err)
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
