package rag_test

import (
	"context"
	"math"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/internal/rag/llm"
)

// MockIndexStore implements vectorDB.IndexStore
type MockIndexStore struct {
	// Control fields to simulate different behaviors
	OnAppend func(ctx context.Context, subject string, chunks []commonModels.Chunk) error
	OnLoad   func(ctx context.Context, subject string) []commonModels.Chunk

	Appended map[string][]commonModels.Chunk
}

func (m *MockIndexStore) Append(ctx context.Context, subject string, chunks []commonModels.Chunk) error {
	if m.Appended == nil {
		m.Appended = make(map[string][]commonModels.Chunk)
	}
	m.Appended[subject] = append(m.Appended[subject], chunks...)
	if m.OnAppend != nil {
		return m.OnAppend(ctx, subject, chunks)
	}
	return nil
}

func (m *MockIndexStore) Load(ctx context.Context, subject string) []commonModels.Chunk {
	if m.OnLoad != nil {
		return m.OnLoad(ctx, subject)
	}
	return nil
}

type MockEmbedder struct {
	OnEmbed func(ctx context.Context, text string, mode embedding.Mode) ([]float32, error)
}

func (m *MockEmbedder) Embed(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text, mode)
	}
	return []float32{1, 0}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemPrompt, userPrompt, opts)
	}
	return "mocked llm response", nil
}

// embeddedChunk builds an indexed chunk whose cosine score against the (1,0)
// query embedding equals score.
func embeddedChunk(id string, text string, score float64) commonModels.Chunk {
	return commonModels.Chunk{
		ChunkId:   id,
		Page:      1,
		Source:    "notes.pdf",
		Text:      text,
		Citation:  "notes.pdf | page 1",
		Embedding: []float32{float32(score), float32(math.Sqrt(1 - score*score))},
	}
}
