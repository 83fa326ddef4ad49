package googleEmbedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/pkg/logger_i"
	"google.golang.org/genai"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Debug("Google Embedding model name: " + modelName)
		logger.Info("Google Embedding client created")
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

// Embed returns the vector for text, or embedding.ErrUnavailable. The call is
// bounded to config.EmbeddingCallTimeout by a dedicated goroutine regardless
// of the caller's own deadline; a rate-limited call is retried once.
func (c *client) Embed(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
	vec, err := c.boundedCall(ctx, text, mode)
	if err != nil && doRetry(err, logger) {
		logger.Debug("Retrying embedding call", "delay", config.EmbeddingRetryDelay)
		time.Sleep(config.EmbeddingRetryDelay)
		vec, err = c.boundedCall(ctx, text, mode)
	}
	if err != nil {
		logger.Error("Error getting Embedding from Google", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", embedding.ErrUnavailable, err)
	}
	return vec, nil
}

func (c *client) boundedCall(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
	type result struct {
		vec []float32
		err error
	}
	resChan := make(chan result, 1)

	callCtx, cancel := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancel()

	go func() {
		res, err := c.genAi.Models.EmbedContent(callCtx, c.model, genai.Text(text),
			&genai.EmbedContentConfig{TaskType: string(mode)})
		if err != nil {
			resChan <- result{nil, err}
			return
		}
		if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
			resChan <- result{nil, fmt.Errorf("empty embedding response")}
			return
		}
		resChan <- result{res.Embeddings[0].Values, nil}
	}()

	select {
	case r := <-resChan:
		return r.vec, r.err
	case <-time.After(config.EmbeddingCallTimeout):
		logger.Warn("Embedding call timed out", "timeout", config.EmbeddingCallTimeout)
		return nil, fmt.Errorf("timeout after %s", config.EmbeddingCallTimeout)
	}
}
