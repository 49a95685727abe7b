package processor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/pipeline/textextract"
	"github.com/rpad300/godmode-docs/internal/pipeline/visionresult"
)

// Processor coordinates the extraction stage with the deferred vision stage.
type Processor struct {
	Logger *slog.Logger
	Text   *textextract.Pipeline
	Vision *visionresult.Pipeline
}

func NewProcessor(logger *slog.Logger, text *textextract.Pipeline, vision *visionresult.Pipeline) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Vision: vision}
}

// ProcessDocument runs the extraction cascade for a documentID
// (creating/advancing extract_job). Jobs that need a vision model stop at
// NEEDS_VISION and wait for CompleteVision. Returns the jobID.
func (p *Processor) ProcessDocument(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	jobID, res, err := p.Text.Run(ctx, documentID)
	if err != nil {
		p.Logger.Error("processor.extract.failed",
			"document_id", documentID,
			"request_id", common.RequestIDFromContext(ctx),
			"project_id", common.ProjectIDFromContext(ctx),
			"err", err,
		)
		return jobID, err
	}
	if res.NeedsVision {
		p.Logger.Info("processor.extract.parked",
			"document_id", documentID,
			"job_id", jobID,
			"method", res.Method,
			"pages", len(res.PageImages),
		)
		return jobID, nil
	}
	p.Logger.Info("processor.extract.ok",
		"document_id", documentID,
		"job_id", jobID,
		"method", res.Method,
		"chars", res.Chars,
	)
	return jobID, nil
}

// CompleteVision finishes a NEEDS_VISION job with a vision-model payload.
func (p *Processor) CompleteVision(ctx context.Context, jobID uuid.UUID, payload []byte) error {
	if err := p.Vision.Complete(ctx, jobID, payload); err != nil {
		p.Logger.Error("processor.vision.failed", "job_id", jobID, "err", err)
		return err
	}
	p.Logger.Info("processor.vision.ok", "job_id", jobID)
	return nil
}
