package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
	"github.com/askmynotes/notes-api/internal/job"
	"github.com/askmynotes/notes-api/internal/metrics"
	"github.com/askmynotes/notes-api/internal/rag"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service    *job.Service
	ragService rag.Service
	uploadDir  string
}

func InitHandlers(jobService *job.Service, ragService rag.Service, uploadDir string) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, ragService: ragService, uploadDir: uploadDir}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new ingest job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobPayload.Subject = newJob.subject
	_job.JobPayload.IngestFileName = newJob.documentName
	_job.JobPayload.IngestURL = newJob.documentSource

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new ingest job")

	//ingestion involves OCR and embedding calls which might take time - external system call
	//a new worker is added for every ingest job and retired after idle timeout
	//this keeps a single worker running at most times therefore cutting resource spend
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	metrics.StartDispatcherSignalCount()                         //metrics
	logJH.Debug("Request count ", accurateCount)
	h.service.DispatcherChannel <- true
}
