package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
	"github.com/askmynotes/notes-api/internal/rag"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/internal/rag/ingest"
)

func newTestService(index *MockIndexStore, llmMock *MockLLM, embedMock *MockEmbedder) rag.Service {
	return rag.NewService(index, llmMock, embedMock, ingest.NewExtractor(nil))
}

func writeTestDoc(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestFile(t *testing.T) {
	index := &MockIndexStore{}
	s := newTestService(index, &MockLLM{}, &MockEmbedder{})

	path := writeTestDoc(t, "bio.txt", "Cells are the basic unit of life. Mitochondria produce energy.")

	result, err := s.IngestFile(context.Background(), "subject1", "bio.txt", path)
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}

	if result.Pages != 1 || result.Chunks != 1 {
		t.Errorf("result = %+v; want 1 page and 1 chunk", result)
	}
	if !strings.HasPrefix(result.Preview, "Cells are the basic unit") {
		t.Errorf("preview = %q", result.Preview)
	}
	if len(index.Appended["subject1"]) != 1 {
		t.Errorf("expected 1 chunk appended to subject1, got %d", len(index.Appended["subject1"]))
	}
	if got := index.Appended["subject1"][0].ChunkId; got != "bio.txt_0" {
		t.Errorf("chunk id = %s; want bio.txt_0", got)
	}
}

func TestIngestFile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		path    string
		setup   func(index *MockIndexStore)
	}{
		{
			name:    "invalid subject",
			subject: "subject9",
			path:    "irrelevant.txt",
		},
		{
			name:    "unsupported extension",
			subject: "subject1",
			path:    "archive.zip",
		},
		{
			name:    "index append failure",
			subject: "subject1",
			setup: func(index *MockIndexStore) {
				index.OnAppend = func(ctx context.Context, subject string, chunks []commonModels.Chunk) error {
					return errors.New("disk full")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := &MockIndexStore{}
			if tt.setup != nil {
				tt.setup(index)
			}
			s := newTestService(index, &MockLLM{}, &MockEmbedder{})

			path := tt.path
			if path == "" {
				path = writeTestDoc(t, "ok.txt", "Some content here.")
			}

			if _, err := s.IngestFile(context.Background(), tt.subject, filepath.Base(path), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAsk(t *testing.T) {
	t.Run("no index", func(t *testing.T) {
		s := newTestService(&MockIndexStore{}, &MockLLM{}, &MockEmbedder{})
		result := s.Ask(context.Background(), "subject1", "what is a cell?")
		if result.IndexFound {
			t.Error("IndexFound should be false for an empty subject")
		}
	})

	t.Run("ranked matches", func(t *testing.T) {
		index := &MockIndexStore{
			OnLoad: func(ctx context.Context, subject string) []commonModels.Chunk {
				return []commonModels.Chunk{
					embeddedChunk("notes.pdf_0", "weak match", 0.30),
					embeddedChunk("notes.pdf_1", "strong match", 0.90),
				}
			},
		}
		s := newTestService(index, &MockLLM{}, &MockEmbedder{})

		result := s.Ask(context.Background(), "subject1", "question")
		if !result.IndexFound {
			t.Fatal("IndexFound should be true")
		}
		// no threshold on the plain ask path
		if len(result.Matches) != 2 {
			t.Fatalf("expected both chunks returned, got %d", len(result.Matches))
		}
		if result.Matches[0].Text != "strong match" {
			t.Errorf("best match = %q", result.Matches[0].Text)
		}
	})
}

func TestAskGrounded(t *testing.T) {
	t.Run("no index short-circuits", func(t *testing.T) {
		s := newTestService(&MockIndexStore{}, &MockLLM{}, &MockEmbedder{})

		result := s.AskGrounded(context.Background(), "subject1", "q")
		if result.IndexFound {
			t.Error("IndexFound should be false")
		}
		if result.Answer != config.NotFoundAnswer {
			t.Errorf("answer = %q; want %q", result.Answer, config.NotFoundAnswer)
		}
		if result.Confidence != "Low" {
			t.Errorf("confidence = %s", result.Confidence)
		}
	})

	t.Run("threshold filters weak matches", func(t *testing.T) {
		index := &MockIndexStore{
			OnLoad: func(ctx context.Context, subject string) []commonModels.Chunk {
				return []commonModels.Chunk{
					embeddedChunk("notes.pdf_0", "relevant fact", 0.80),
					embeddedChunk("notes.pdf_1", "irrelevant fact", 0.20),
				}
			},
		}
		s := newTestService(index, &MockLLM{}, &MockEmbedder{})

		result := s.AskGrounded(context.Background(), "subject1", "q")
		if !result.IndexFound {
			t.Fatal("IndexFound should be true")
		}
		if result.Answer != "mocked llm response" {
			t.Errorf("answer = %q", result.Answer)
		}
		if result.Confidence != "High" {
			t.Errorf("confidence = %s; want High from 0.80", result.Confidence)
		}
		if len(result.Evidence) != 1 {
			t.Fatalf("expected only the above-threshold chunk as evidence, got %d", len(result.Evidence))
		}
	})
}

func TestTeacherAsk(t *testing.T) {
	t.Run("no notes", func(t *testing.T) {
		s := newTestService(&MockIndexStore{}, &MockLLM{}, &MockEmbedder{})
		reply := s.TeacherAsk(context.Background(), "subject1", "q", nil)
		if reply != config.TeacherNoNotesReply {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("short follow-up widens the search query", func(t *testing.T) {
		var embeddedQueries []string
		em := &MockEmbedder{
			OnEmbed: func(ctx context.Context, text string, mode embedding.Mode) ([]float32, error) {
				embeddedQueries = append(embeddedQueries, text)
				return []float32{1, 0}, nil
			},
		}
		index := &MockIndexStore{
			OnLoad: func(ctx context.Context, subject string) []commonModels.Chunk {
				return []commonModels.Chunk{embeddedChunk("notes.pdf_0", "osmosis detail", 0.80)}
			},
		}
		s := newTestService(index, &MockLLM{}, em)

		history := []commonModels.ChatTurn{{Role: "user", Content: "explain osmosis"}}
		reply := s.TeacherAsk(context.Background(), "subject1", "simplify it", history)

		if reply != "mocked llm response" {
			t.Errorf("reply = %q", reply)
		}
		if len(embeddedQueries) != 1 || embeddedQueries[0] != "explain osmosis simplify it" {
			t.Errorf("search query = %v; want the widened form", embeddedQueries)
		}
	})
}

func TestIngestJob(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		index := &MockIndexStore{}
		s := newTestService(index, &MockLLM{}, &MockEmbedder{})

		path := writeTestDoc(t, "history.txt", "The treaty was signed in 1648. It ended the war.")
		job := jobModel.Job{
			Id: "job-1",
			JobPayload: jobModel.JobPayload{
				Subject:        "subject2",
				IngestFileName: "history.txt",
				IngestURL:      path,
			},
		}

		result := s.IngestJob(context.Background(), job)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("status = %v; want complete", result.Status)
		}
		if result.CurrentStep != jobModel.Complete {
			t.Errorf("step = %v", result.CurrentStep)
		}
		if result.JobPayload.ChunkCount != 1 || result.JobPayload.PageCount != 1 {
			t.Errorf("payload counts = %+v", result.JobPayload)
		}
		if len(index.Appended["subject2"]) != 1 {
			t.Errorf("chunks not appended to subject2")
		}
	})

	t.Run("extraction failure", func(t *testing.T) {
		s := newTestService(&MockIndexStore{}, &MockLLM{}, &MockEmbedder{})

		job := jobModel.Job{
			Id: "job-2",
			JobPayload: jobModel.JobPayload{
				Subject:        "subject1",
				IngestFileName: "ghost.pdf",
				IngestURL:      filepath.Join(t.TempDir(), "ghost.pdf"),
			},
		}

		result := s.IngestJob(context.Background(), job)

		if result.Status != jobModel.JobStatusError {
			t.Fatalf("status = %v; want error", result.Status)
		}
		if result.Error.Code != http.StatusInternalServerError {
			t.Errorf("error code = %d", result.Error.Code)
		}
	})
}
