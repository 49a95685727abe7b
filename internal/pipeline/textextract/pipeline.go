package textextract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/constants"
	"github.com/rpad300/godmode-docs/internal/extractor"
	"github.com/rpad300/godmode-docs/internal/repository"
)

// Result summarizes what the extraction stage produced for one document.
type Result struct {
	Method      string
	Chars       int
	NeedsVision bool
	PageImages  []string
}

type Pipeline struct {
	Documents repository.DocumentRepository
	Jobs      repository.ExtractJobRepository
	Extractor *extractor.Extractor
	Log       *slog.Logger
}

func NewPipeline(docs repository.DocumentRepository, jobs repository.ExtractJobRepository, ex *extractor.Extractor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Documents: docs, Jobs: jobs, Extractor: ex, Log: log}
}

// Run starts an extract_job for the document and drives the extraction
// cascade. Images and scanned PDFs park the job as NEEDS_VISION with the
// artifacts the vision pipeline needs; everything else finishes with text.
// Returns the job ID and a summary. A per-document failure finishes the job
// FAILED and comes back as an error for the caller to log; it must never
// abort a batch.
func (p *Pipeline) Run(ctx context.Context, documentID uuid.UUID) (uuid.UUID, Result, error) {
	row, err := p.Documents.GetByID(ctx, documentID)
	if err != nil {
		return uuid.Nil, Result{}, fmt.Errorf("get document: %w", err)
	}

	class := constants.ClassOfExt(row.FileExt)

	job, err := p.Jobs.Start(ctx, row.ID, row.ProjectID, string(class), string(constants.JobStatusRunning))
	if err != nil {
		return uuid.Nil, Result{}, err
	}

	if class == constants.ClassImage {
		// The sentinel, not extracted text, travels through the content
		// channel; the caller routes the file itself to the vision model.
		sentinel := fmt.Sprintf("[IMAGE:%s]", row.SourcePath)
		if err := p.Jobs.MarkNeedsVision(ctx, job.ID, sentinel, []string{row.SourcePath}, "vision-image"); err != nil {
			return job.ID, Result{}, err
		}
		return job.ID, Result{Method: "vision-image", NeedsVision: true, PageImages: []string{row.SourcePath}}, nil
	}

	if constants.NormalizeExt(row.FileExt) == "pdf" {
		assess := p.Extractor.IsPDFScanned(ctx, row.SourcePath)
		p.Log.Debug("scan assessment",
			"document_id", documentID,
			"scanned", assess.IsScanned,
			"chars_per_page", assess.CharsPerPage,
			"pages", assess.PageCount,
		)
		if assess.IsScanned {
			return p.runScanned(ctx, job.ID, row.SourcePath)
		}
	}

	out := p.Extractor.Extract(ctx, row.SourcePath)
	if out.Kind != extractor.KindText {
		msg := out.Text
		if ferr := p.Jobs.FinishFailure(ctx, job.ID, msg); ferr != nil {
			return job.ID, Result{}, ferr
		}
		return job.ID, Result{}, fmt.Errorf("extraction failed: %s", msg)
	}

	if err := p.Jobs.FinishText(ctx, job.ID, out.Text, out.Method, 0); err != nil {
		return job.ID, Result{}, err
	}
	return job.ID, Result{Method: out.Method, Chars: len(out.Text)}, nil
}

// runScanned rasterizes a scanned PDF and parks the job for OCR.
func (p *Pipeline) runScanned(ctx context.Context, jobID uuid.UUID, path string) (uuid.UUID, Result, error) {
	images, err := p.Extractor.ConvertPDFToImages(ctx, path)
	if err != nil {
		// data dir is broken; this one may propagate
		_ = p.Jobs.FinishFailure(ctx, jobID, err.Error())
		return jobID, Result{}, err
	}
	if images == nil {
		msg := "pdf rasterization unavailable"
		if ferr := p.Jobs.FinishFailure(ctx, jobID, msg); ferr != nil {
			return jobID, Result{}, ferr
		}
		return jobID, Result{}, fmt.Errorf("%s: %s", msg, path)
	}
	if err := p.Jobs.MarkNeedsVision(ctx, jobID, "", images, "pdf-raster"); err != nil {
		return jobID, Result{}, err
	}
	return jobID, Result{Method: "pdf-raster", NeedsVision: true, PageImages: images}, nil
}
