package visionresult

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/constants"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/repository"
	"github.com/rpad300/godmode-docs/internal/vision"
)

type Pipeline struct {
	Jobs repository.ExtractJobRepository
	Log  *slog.Logger
}

func NewPipeline(jobs repository.ExtractJobRepository, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Jobs: jobs, Log: log}
}

// Complete accepts a raw vision-model payload for a NEEDS_VISION job,
// validates it against the result envelope and finishes the job with the
// sanitized text. Invalid payloads leave the job untouched so the caller
// can retry with a corrected response.
func (p *Pipeline) Complete(ctx context.Context, jobID uuid.UUID, payload []byte) error {
	res, err := vision.ParseResult(payload)
	if err != nil {
		return common.NewAppError(common.ErrCodeInvalidInput, "invalid vision payload", err)
	}

	job, err := p.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return common.NewAppError(common.ErrCodeNotFound, "extract job not found", err)
	}
	if job.Status == nil || *job.Status != string(constants.JobStatusNeedsVision) {
		got := "<unset>"
		if job.Status != nil {
			got = *job.Status
		}
		return common.NewAppError(common.ErrCodeInvalidInput,
			fmt.Sprintf("job is %s, expected %s", got, constants.JobStatusNeedsVision), nil)
	}

	method := "vision"
	if res.Model != "" {
		method = "vision:" + res.Model
	}
	if err := p.Jobs.FinishVision(ctx, jobID, res.Text, method); err != nil {
		return err
	}
	p.Log.Info("vision result accepted", "job_id", jobID, "model", res.Model, "chars", len(res.Text))
	return nil
}
