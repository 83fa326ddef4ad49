package fileIndex

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
)

type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string, mode embedding.Mode) ([]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text, mode)
	}
	return []float32{0.1, 0.2}, nil
}

func testChunks(source string, n int) []commonModels.Chunk {
	chunks := make([]commonModels.Chunk, 0, n)
	for i := 0; i < n; i++ {
		chunks = append(chunks, commonModels.Chunk{
			ChunkId: source + "_" + string(rune('0'+i)),
			Page:    i + 1,
			Source:  source,
			Text:    "some study notes",
		})
	}
	return chunks
}

func TestStore_AppendAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir(), &mockEmbedder{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Append(ctx, "subject1", testChunks("bio.pdf", 2)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, "subject1", testChunks("chem.pdf", 1)); err != nil {
		t.Fatalf("Second append failed: %v", err)
	}

	loaded := store.Load(ctx, "subject1")
	if len(loaded) != 3 {
		t.Fatalf("Expected 3 chunks after two appends, got %d", len(loaded))
	}

	first := loaded[0]
	if first.Citation != "bio.pdf | page 1" {
		t.Errorf("citation = %q; want %q", first.Citation, "bio.pdf | page 1")
	}
	if len(first.Embedding) == 0 {
		t.Error("chunk persisted without embedding despite working embedder")
	}
}

func TestStore_SubjectsAreIsolated(t *testing.T) {
	store, _ := NewStore(t.TempDir(), &mockEmbedder{})
	ctx := context.Background()

	if err := store.Append(ctx, "subject1", testChunks("a.pdf", 1)); err != nil {
		t.Fatal(err)
	}

	if got := store.Load(ctx, "subject2"); len(got) != 0 {
		t.Errorf("subject2 should be empty, got %d chunks", len(got))
	}
}

func TestStore_LoadMissingIndex(t *testing.T) {
	store, _ := NewStore(t.TempDir(), &mockEmbedder{})
	if got := store.Load(context.Background(), "subject3"); got != nil {
		t.Errorf("Expected nil for never-ingested subject, got %v", got)
	}
}

func TestStore_LoadCorruptedIndex(t *testing.T) {
	store, _ := NewStore(t.TempDir(), &mockEmbedder{})
	ctx := context.Background()

	if err := os.WriteFile(store.IndexPath("subject1"), []byte("{not json"), 0640); err != nil {
		t.Fatal(err)
	}
	if got := store.Load(ctx, "subject1"); got != nil {
		t.Errorf("Corrupted index should read as empty, got %v", got)
	}

	// a fresh append recovers the subject
	if err := store.Append(ctx, "subject1", testChunks("new.pdf", 1)); err != nil {
		t.Fatalf("Append over corrupted index failed: %v", err)
	}
	if got := store.Load(ctx, "subject1"); len(got) != 1 {
		t.Errorf("Expected 1 chunk after recovery append, got %d", len(got))
	}
}

func TestStore_AppendWithEmbedderDown(t *testing.T) {
	down := &mockEmbedder{
		embedFunc: func(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
			return nil, errors.New("unavailable: deadline exceeded")
		},
	}
	store, _ := NewStore(t.TempDir(), down)
	ctx := context.Background()

	if err := store.Append(ctx, "subject1", testChunks("b.pdf", 1)); err != nil {
		t.Fatalf("Append must not fail on embedding outage: %v", err)
	}

	loaded := store.Load(ctx, "subject1")
	if len(loaded) != 1 {
		t.Fatalf("Expected chunk persisted, got %d", len(loaded))
	}
	if loaded[0].Embedding != nil {
		t.Error("chunk should have no embedding when the embedder is down")
	}
	if loaded[0].Citation == "" {
		t.Error("citation should be attached regardless of embedding outcome")
	}
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewStore(dir, &mockEmbedder{})

	if err := store.Append(context.Background(), "subject1", testChunks("c.pdf", 1)); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(store.IndexPath("subject1") + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp index file left behind after append")
	}
}

func TestStore_DocumentMode(t *testing.T) {
	var gotMode embedding.Mode
	store, _ := NewStore(t.TempDir(), &mockEmbedder{
		embedFunc: func(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
			gotMode = mode
			return []float32{1}, nil
		},
	})

	store.Append(context.Background(), "subject1", testChunks("d.pdf", 1))
	if gotMode != embedding.ModeDocument {
		t.Errorf("chunks embedded with mode %q; want %q", gotMode, embedding.ModeDocument)
	}
}
