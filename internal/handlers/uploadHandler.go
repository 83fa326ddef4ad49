package handlers

import (
	"net/http"

	"github.com/askmynotes/notes-api/internal/api"
	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

var logRH *logger_i.Logger

// carries one queued ingestion through job creation
type newJobData struct {
	id             string
	subject        string
	traceId        string
	documentName   string
	documentSource string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"message": "AskMyNotes API is running"})
}

// SubjectsHandler godoc
// @Summary      List subjects
// @Description  Returns the fixed set of subject namespaces notes can be filed under.
// @Tags         Subjects
// @Produce      json
// @Success      200  {object}  api.SubjectsResponse
// @Router       /subjects [get]
func SubjectsHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.SubjectsResponse{Subjects: config.Subjects})
}

// UploadHandler godoc
// @Summary      Upload and index documents
// @Description  Receives one or more files via multipart/form-data, extracts and chunks them, and appends them to the subject index before responding.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        subject  formData  string  true  "Subject namespace (subject1, subject2 or subject3)"
// @Param        files    formData  file    true  "PDFs, images or documents to index"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.JobResponse "Invalid subject or malformed form"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	subject, ok := parseUploadForm(w, r)
	if !ok {
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "No files provided")
		return
	}

	results := make([]api.FileResult, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		savedPath, err := saveUploadedFile(header, subject)
		if err != nil {
			logRH.Error("Failed to save upload", "file", header.Filename, "err", err)
			results = append(results, api.FileResult{Filename: header.Filename, Error: "Storage error"})
			continue
		}

		ingested, err := handlerInstance.ragService.IngestFile(r.Context(), subject, header.Filename, savedPath)
		if err != nil {
			logRH.Error("Failed to ingest upload", "file", header.Filename, "err", err)
			results = append(results, api.FileResult{Filename: header.Filename, Error: "Ingestion failed"})
			continue
		}
		results = append(results, api.FileResult{Filename: ingested.FileName, Preview: ingested.Preview})
	}

	writeJsonResponse(w, http.StatusOK, api.UploadResponse{
		Message:    "Files uploaded successfully",
		TotalFiles: len(results),
		Files:      results,
	})
}

// UploadAsyncHandler godoc
// @Summary      Queue documents for background indexing
// @Description  Saves the uploaded files and queues one ingestion job per file, returning job IDs to poll for status.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        subject  formData  string  true  "Subject namespace"
// @Param        files    formData  file    true  "Documents to index"
// @Success      202  {object}  api.AsyncUploadResponse "Jobs successfully created"
// @Failure      400  {object}  api.JobResponse "Invalid subject or malformed form"
// @Router       /upload/async [post]
func UploadAsyncHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	subject, ok := parseUploadForm(w, r)
	if !ok {
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "No files provided")
		return
	}

	response := api.AsyncUploadResponse{Message: "Ingestion jobs queued", Jobs: []api.InitJobResponse{}}
	for _, header := range fileHeaders {
		savedPath, err := saveUploadedFile(header, subject)
		if err != nil {
			logRH.Error("Failed to save upload", "file", header.Filename, "err", err)
			response.Errors = append(response.Errors, api.FileResult{Filename: header.Filename, Error: "Storage error"})
			continue
		}
		response.Jobs = append(response.Jobs, queueNewJob(r, subject, header.Filename, savedPath))
	}

	writeJsonResponse(w, http.StatusAccepted, response)
}
