package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestResponse struct {
	Subject  string `json:"subject"`
	FileName string `json:"filename"`
	Preview  string `json:"preview,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	Chunks   int    `json:"chunks,omitempty"`
}

type Result struct {
	Status       string          `json:"status"`
	IngestResult *IngestResponse `json:"ingest_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	Filename  string `json:"filename,omitempty"`
	StatusURL string `json:"status_url"`
}

// AsyncUploadResponse lists the ingest jobs queued for a multi-file upload,
// one per file; files that never made it to a job land in Errors.
type AsyncUploadResponse struct {
	Message string            `json:"message"`
	Jobs    []InitJobResponse `json:"jobs"`
	Errors  []FileResult      `json:"errors,omitempty"`
}

type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}

type FileResult struct {
	Filename string `json:"filename"`
	Preview  string `json:"preview,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UploadResponse struct {
	Message    string       `json:"message"`
	TotalFiles int          `json:"total_files"`
	Files      []FileResult `json:"files"`
}

type MatchResult struct {
	Citation string `json:"citation"`
	Text     string `json:"text"`
}

type AskResponse struct {
	Question string        `json:"question"`
	Results  []MatchResult `json:"results"`
	Message  string        `json:"message,omitempty"`
}

type EvidenceResult struct {
	Citation string `json:"citation"`
	Snippet  string `json:"snippet"`
}

type GroundedResponse struct {
	Answer     string           `json:"answer"`
	Confidence string           `json:"confidence"`
	Evidence   []EvidenceResult `json:"evidence"`
	Prompt     string           `json:"prompt,omitempty"`
	Message    string           `json:"message,omitempty"`
}

type TeacherResponse struct {
	Reply  string `json:"reply"`
	ChatId string `json:"chat_id,omitempty"`
}

// requests---------------------

type AskRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Question string `json:"question" validate:"required"`
}

type TeacherRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Question string `json:"question" validate:"required"`
	History  string `json:"history,omitempty"` // JSON array of {role, content} turns
	ChatID   string `json:"chat_id,omitempty"`
}
