package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/askmynotes/notes-api/internal/adapter"
	"github.com/askmynotes/notes-api/internal/adapter/utils"
	"github.com/askmynotes/notes-api/internal/api"
	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// parseUploadForm validates the multipart form and its subject field.
func parseUploadForm(w http.ResponseWriter, r *http.Request) (string, bool) {
	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return "", false
	}

	subject := r.FormValue("subject")
	if !config.IsValidSubject(subject) {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid subject")
		return "", false
	}
	return subject, true
}

// saveUploadedFile lands an upload under uploads/<subject>/ with a timestamp
// prefix so repeated uploads of the same file never collide.
func saveUploadedFile(header *multipart.FileHeader, subject string) (string, error) {
	targetDir := filepath.Join(handlerInstance.uploadDir, subject)
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", err
	}

	fileReader, err := header.Open()
	if err != nil {
		return "", err
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	targetPath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(targetPath)
	if err != nil {
		return "", err
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		return "", err
	}
	return targetPath, nil
}

func queueNewJob(request *http.Request, subject string, docName string, docPath string) api.InitJobResponse {
	newJob := newJobData{
		id:             utils.GetNewUUID(),
		subject:        subject,
		traceId:        request.Context().Value(config.TRACE_ID_KEY).(string),
		documentName:   docName,
		documentSource: docPath,
	}
	CreateNewJob(newJob)
	return adapter.ToInitJobResponse(newJob.id, docName)
}
