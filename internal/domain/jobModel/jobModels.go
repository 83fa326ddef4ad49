package jobModel

import (
	"context"
	"time"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtraction InternalStatus = "Extraction"
	IngestChunking   InternalStatus = "Chunking"
	IngestIndexing   InternalStatus = "Indexing"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"
)

// Job tracks one asynchronous document ingestion from upload to index append.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Subject        string `json:"subject"`
	IngestFileName string `json:"ingest_file_name"`
	IngestURL      string `json:"ingest_url"`
	Preview        string `json:"preview,omitempty"`
	PageCount      int    `json:"page_count,omitempty"`
	ChunkCount     int    `json:"chunk_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// ChatStore persists teacher conversations keyed by chat id.
type ChatStore interface {
	ValidateChatId(ctx context.Context, id string) bool
	InitNewChat(ctx context.Context, id string) error
	AppendTurns(ctx context.Context, id string, turns ...commonModels.ChatTurn) error
	GetHistory(ctx context.Context, chatId string, tail int) ([]commonModels.ChatTurn, error)
}
