package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/constants"
	"github.com/rpad300/godmode-docs/gen/ent"
	entjob "github.com/rpad300/godmode-docs/gen/ent/extractjob"
)

type ExtractJobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ent.ExtractJob, error)
	Start(ctx context.Context, documentID, projectID uuid.UUID, format, status string) (*ent.ExtractJob, error)
	FinishText(ctx context.Context, jobID uuid.UUID, content, method string, pages int) error
	MarkNeedsVision(ctx context.Context, jobID uuid.UUID, content string, pageImages []string, method string) error
	FinishVision(ctx context.Context, jobID uuid.UUID, content, method string) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	ListByProject(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]*ent.ExtractJob, error)
}

type extractJobRepo struct {
	ent *ent.Client
	log *slog.Logger
}

func NewExtractJobRepository(entc *ent.Client, log *slog.Logger) ExtractJobRepository {
	return &extractJobRepo{ent: entc, log: log}
}

func (r *extractJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*ent.ExtractJob, error) {
	return r.ent.ExtractJob.Get(ctx, id)
}

func (r *extractJobRepo) Start(ctx context.Context, documentID, projectID uuid.UUID, format, status string) (*ent.ExtractJob, error) {
	job, err := r.ent.ExtractJob.
		Create().
		SetDocumentID(documentID).
		SetProjectID(projectID).
		SetFormat(format).
		SetStatus(status).
		Save(ctx)
	if err != nil {
		r.log.Error("extract_job start failed", "document_id", documentID, "err", err)
		return nil, err
	}
	r.log.Info("extract_job started", "job_id", job.ID, "document_id", documentID, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishText(ctx context.Context, jobID uuid.UUID, content, method string, pages int) error {
	_, err := r.ent.ExtractJob.
		UpdateOneID(jobID).
		SetContent(content).
		SetMethod(method).
		SetPageCount(pages).
		SetFinishedAt(time.Now()).
		SetStatus(string(constants.JobStatusTextOK)).
		Save(ctx)
	if err != nil {
		r.log.Error("extract_job finish(TEXT_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished (TEXT_OK)", "job_id", jobID, "method", method, "chars", len(content))
	return nil
}

// MarkNeedsVision parks the job for the vision/OCR pipeline: the content
// column holds the sentinel marker, page_images the rasterized pages.
func (r *extractJobRepo) MarkNeedsVision(ctx context.Context, jobID uuid.UUID, content string, pageImages []string, method string) error {
	_, err := r.ent.ExtractJob.
		UpdateOneID(jobID).
		SetContent(content).
		SetPageImages(pageImages).
		SetMethod(method).
		SetPageCount(len(pageImages)).
		SetStatus(string(constants.JobStatusNeedsVision)).
		Save(ctx)
	if err != nil {
		r.log.Error("extract_job mark(NEEDS_VISION) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job parked (NEEDS_VISION)", "job_id", jobID, "pages", len(pageImages))
	return nil
}

func (r *extractJobRepo) FinishVision(ctx context.Context, jobID uuid.UUID, content, method string) error {
	_, err := r.ent.ExtractJob.
		UpdateOneID(jobID).
		SetContent(content).
		SetMethod(method).
		SetFinishedAt(time.Now()).
		SetStatus(string(constants.JobStatusVisionOK)).
		Save(ctx)
	if err != nil {
		r.log.Error("extract_job finish(VISION_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished (VISION_OK)", "job_id", jobID, "chars", len(content))
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.ent.ExtractJob.
		UpdateOneID(jobID).
		SetFinishedAt(time.Now()).
		SetStatus(string(constants.JobStatusFailed)).
		SetErrorMessage(message).
		Save(ctx)
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) ListByProject(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]*ent.ExtractJob, error) {
	q := r.ent.ExtractJob.Query().
		Where(entjob.ProjectID(projectID)).
		Order(ent.Asc(entjob.FieldStartedAt))
	if from != nil {
		q = q.Where(entjob.StartedAtGTE(*from))
	}
	if to != nil {
		// to is a date; jobs started any time on that day are included.
		q = q.Where(entjob.StartedAtLT(to.AddDate(0, 0, 1)))
	}
	return q.All(ctx)
}
