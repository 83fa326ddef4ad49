package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
	"github.com/askmynotes/notes-api/internal/metrics"
	"github.com/askmynotes/notes-api/internal/rag/answer"
	"github.com/askmynotes/notes-api/internal/rag/ingest"
)

// IngestJob is the async path the worker drives. It mirrors IngestFile but
// records per-step progress on the job so /status can report it.
func (s *service) IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	inMethodLogger := s.logger.With("JobId", job.Id, "subject", job.JobPayload.Subject)

	job.CurrentStep = jobModel.IngestExtraction
	inMethodLogger.Debug("IngestJob", "Current Status", job.CurrentStep)
	pages, _, err := s.executeExtractionStep(ctx, job.JobPayload.IngestURL)
	if err != nil {
		return s.jobError(job, err, "EXTRACTION_FAILURE", false)
	}

	job.CurrentStep = jobModel.IngestChunking
	inMethodLogger.Debug("IngestJob", "Current Status", job.CurrentStep)
	chunks := s.executeChunkingStep(pages, job.JobPayload.IngestFileName)

	job.CurrentStep = jobModel.IngestIndexing
	inMethodLogger.Debug("IngestJob", "Current Status", job.CurrentStep)
	if err := s.executeIndexingStep(ctx, job.JobPayload.Subject, chunks); err != nil {
		return s.jobError(job, err, "INDEXING_FAILURE", true)
	}

	job.JobPayload.PageCount = len(pages)
	job.JobPayload.ChunkCount = len(chunks)
	if len(pages) > 0 {
		job.JobPayload.Preview = commonModels.TruncateRunes(pages[0].Text, config.PreviewLength)
	}
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) executeExtractionStep(ctx context.Context, path string) ([]commonModels.Page, commonModels.DocType, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	return s.extractor.ExtractPages(ctx, path)
}

func (s *service) executeChunkingStep(pages []commonModels.Page, fileName string) []commonModels.Chunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return ingest.BuildChunks(pages, fileName, config.ChunkSizeWords, config.ChunkOverlapSentence)
}

func (s *service) executeIndexingStep(ctx context.Context, subject string, chunks []commonModels.Chunk) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("indexing", time.Since(start)) }()

	if err := s.index.Append(ctx, subject, chunks); err != nil {
		return err
	}
	metrics.CountIndexedChunks(subject, len(chunks))
	return nil
}

func (s *service) executeRetrievalStep(ctx context.Context, query string, chunks []commonModels.Chunk, topK int, threshold bool) []commonModels.ScoredChunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	if threshold {
		return s.retriever.RetrieveAboveThreshold(ctx, query, chunks, topK, config.MinScoreThreshold)
	}
	return s.retriever.Retrieve(ctx, query, chunks, topK)
}

func (s *service) executeComposeStep(ctx context.Context, question string, scored []commonModels.ScoredChunk) answer.Grounded {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.composer.ComposeGrounded(ctx, question, scored)
}

func (s *service) executeTeacherStep(ctx context.Context, question string, scored []commonModels.ScoredChunk, history []commonModels.ChatTurn) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("teacher_generation", time.Since(start)) }()

	return s.composer.ComposeTeacher(ctx, question, scored, history)
}
