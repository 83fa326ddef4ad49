package fileIndex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/internal/rag/vectorDB"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

// Store persists one JSON chunk collection per subject under dir. Appends are
// full-collection rewrites through a temp file and an atomic rename, so a
// reader never observes a partially written index. Concurrent appends within
// the process are serialized per subject; across processes the last full
// snapshot wins.
type Store struct {
	dir      string
	embedder embedding.Embedder
	logger   *logger_i.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(dir string, embedder embedding.Embedder) (*Store, error) {
	if dir == "" {
		return nil, errors.New("empty index directory")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	return &Store{
		dir:      dir,
		embedder: embedder,
		logger:   logger_i.NewLogger("FileIndex"),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

var _ vectorDB.IndexStore = (*Store)(nil)

// Append embeds chunks still missing a vector, attaches citations, and
// persists the grown collection. An unavailable embedding service never fails
// the append; such chunks are stored without a vector and skipped at
// retrieval until a future re-upload embeds them.
func (s *Store) Append(ctx context.Context, subject string, chunks []commonModels.Chunk) error {
	lock := s.subjectLock(subject)
	lock.Lock()
	defer lock.Unlock()

	for i := range chunks {
		chunks[i].Citation = chunks[i].BuildCitation()

		if chunks[i].Embedding == nil && s.embedder != nil {
			vec, err := s.embedder.Embed(ctx, chunks[i].Text, embedding.ModeDocument)
			if err != nil {
				s.logger.Warn("Chunk stored without embedding", "chunkId", chunks[i].ChunkId, "error", err)
				continue
			}
			chunks[i].Embedding = vec
		}
	}

	existing := s.Load(ctx, subject)
	existing = append(existing, chunks...)

	if err := s.writeAtomic(subject, existing); err != nil {
		return err
	}
	s.logger.Info("Saved chunks to index", "subject", subject, "appended", len(chunks), "total", len(existing))
	return nil
}

// Load returns the subject's full collection. Absence and corruption both
// read as an empty collection; no repair is attempted.
func (s *Store) Load(ctx context.Context, subject string) []commonModels.Chunk {
	data, err := os.ReadFile(s.IndexPath(subject))
	if err != nil {
		return nil
	}

	var chunks []commonModels.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		s.logger.Warn("Index file unparseable, treating as empty", "subject", subject, "error", err)
		return nil
	}
	return chunks
}

// IndexPath names the persisted artifact for a subject.
func (s *Store) IndexPath(subject string) string {
	return filepath.Join(s.dir, subject+"_index.json")
}

func (s *Store) writeAtomic(subject string, chunks []commonModels.Chunk) error {
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling index: %w", err)
	}

	indexPath := s.IndexPath(subject)
	tmpPath := indexPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0640); err != nil {
		return fmt.Errorf("writing temp index: %w", err)
	}
	if err := os.Rename(tmpPath, indexPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing index: %w", err)
	}
	return nil
}

func (s *Store) subjectLock(subject string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[subject]
	if !ok {
		lock = new(sync.Mutex)
		s.locks[subject] = lock
	}
	return lock
}
