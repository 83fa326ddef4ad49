package adapter

import (
	"fmt"
	"time"

	"github.com/askmynotes/notes-api/internal/api"
	"github.com/askmynotes/notes-api/internal/domain/jobModel"
)

func ToInitJobResponse(id string, filename string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		Filename:  filename,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		IngestResult: ToIngestResponse(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestResponse(job jobModel.Job) *api.IngestResponse {
	if job.Status != jobModel.JobStatusComplete {
		return nil
	}

	return &api.IngestResponse{
		Subject:  job.JobPayload.Subject,
		FileName: job.JobPayload.IngestFileName,
		Preview:  job.JobPayload.Preview,
		Pages:    job.JobPayload.PageCount,
		Chunks:   job.JobPayload.ChunkCount,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
