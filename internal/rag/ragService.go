package rag

import (
	"context"
	"fmt"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
	"github.com/askmynotes/notes-api/internal/rag/answer"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/internal/rag/ingest"
	"github.com/askmynotes/notes-api/internal/rag/llm"
	"github.com/askmynotes/notes-api/internal/rag/retriever"
	"github.com/askmynotes/notes-api/internal/rag/vectorDB"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

// IngestResult summarizes one indexed document.
type IngestResult struct {
	FileName string
	Preview  string
	Pages    int
	Chunks   int
}

// AskResult carries raw semantic matches without LLM involvement.
type AskResult struct {
	IndexFound bool
	Matches    []commonModels.ScoredChunk
}

// GroundedResult is an LLM answer plus its confidence and evidence.
type GroundedResult struct {
	IndexFound bool
	answer.Grounded
}

// Service is the only surface handlers and workers see. They don't need to
// know the index, the LLM or the embedder behind it.
type Service interface {
	IngestFile(ctx context.Context, subject string, fileName string, path string) (IngestResult, error)
	Ask(ctx context.Context, subject string, question string) AskResult
	AskGrounded(ctx context.Context, subject string, question string) GroundedResult
	TeacherAsk(ctx context.Context, subject string, question string, history []commonModels.ChatTurn) string
	IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	index     vectorDB.IndexStore
	retriever *retriever.Retriever
	composer  *answer.Composer
	extractor *ingest.Extractor
	logger    *logger_i.Logger
}

// NewService constructor
func NewService(index vectorDB.IndexStore, llmProvider llm.Provider, em embedding.Embedder, ex *ingest.Extractor) Service {
	return &service{
		index:     index,
		retriever: retriever.New(em),
		composer:  answer.NewComposer(llmProvider),
		extractor: ex,
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

// IngestFile runs extract, chunk, index for one saved upload and reports the
// first-page preview plus page and chunk counts.
func (s *service) IngestFile(ctx context.Context, subject string, fileName string, path string) (IngestResult, error) {
	if !config.IsValidSubject(subject) {
		return IngestResult{}, fmt.Errorf("invalid subject: %s", subject)
	}

	pages, _, err := s.executeExtractionStep(ctx, path)
	if err != nil {
		return IngestResult{}, fmt.Errorf("extraction failed for %s: %w", fileName, err)
	}

	chunks := s.executeChunkingStep(pages, fileName)
	if err := s.executeIndexingStep(ctx, subject, chunks); err != nil {
		return IngestResult{}, fmt.Errorf("indexing failed for %s: %w", fileName, err)
	}

	preview := ""
	if len(pages) > 0 {
		preview = commonModels.TruncateRunes(pages[0].Text, config.PreviewLength)
	}

	s.logger.Info("Document ingested", "subject", subject, "file", fileName, "pages", len(pages), "chunks", len(chunks))
	return IngestResult{
		FileName: fileName,
		Preview:  preview,
		Pages:    len(pages),
		Chunks:   len(chunks),
	}, nil
}

// Ask returns the raw top matches for a question, no threshold applied.
func (s *service) Ask(ctx context.Context, subject string, question string) AskResult {
	chunks := s.index.Load(ctx, subject)
	if len(chunks) == 0 {
		return AskResult{IndexFound: false}
	}
	matches := s.executeRetrievalStep(ctx, question, chunks, config.DefaultTopK, false)
	return AskResult{IndexFound: true, Matches: matches}
}

// AskGrounded retrieves above the score threshold and composes an LLM answer
// with confidence and evidence attached.
func (s *service) AskGrounded(ctx context.Context, subject string, question string) GroundedResult {
	chunks := s.index.Load(ctx, subject)
	if len(chunks) == 0 {
		return GroundedResult{
			IndexFound: false,
			Grounded: answer.Grounded{
				Answer:     config.NotFoundAnswer,
				Confidence: "Low",
				Evidence:   []answer.Evidence{},
			},
		}
	}

	scored := s.executeRetrievalStep(ctx, question, chunks, config.DefaultTopK, true)
	grounded := s.executeComposeStep(ctx, question, scored)
	return GroundedResult{IndexFound: true, Grounded: grounded}
}

// TeacherAsk answers conversationally. Short follow-ups get the previous user
// turn folded into the search query so retrieval still lands on topic.
func (s *service) TeacherAsk(ctx context.Context, subject string, question string, history []commonModels.ChatTurn) string {
	chunks := s.index.Load(ctx, subject)
	if len(chunks) == 0 {
		return config.TeacherNoNotesReply
	}

	searchQuery := answer.RewriteQuery(question, history)
	if searchQuery != question {
		s.logger.Debug("Short follow-up, widened search query", "query", searchQuery)
	}

	scored := s.executeRetrievalStep(ctx, searchQuery, chunks, config.TeacherTopK, true)
	return s.executeTeacherStep(ctx, question, scored, history)
}
