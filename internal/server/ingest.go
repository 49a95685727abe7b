package server

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	v1 "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/ingest"
	processor "github.com/rpad300/godmode-docs/internal/pipeline"
	"github.com/rpad300/godmode-docs/internal/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ExtractionService struct {
	v1.UnimplementedExtractionServiceServer
	ingestor    ingest.Ingestor
	projectRepo repository.ProjectRepository
	jobsRepo    repository.ExtractJobRepository
	processor   *processor.Processor
	exporter    Exporter
	logger      *slog.Logger
}

// Exporter is the slice of the export service this server needs.
type Exporter interface {
	ExportJobsXLSX(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]byte, error)
}

func NewExtractionService(
	ing ingest.Ingestor,
	proc *processor.Processor,
	projects repository.ProjectRepository,
	jobs repository.ExtractJobRepository,
	exporter Exporter,
	logger *slog.Logger,
) *ExtractionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionService{
		ingestor:    ing,
		processor:   proc,
		projectRepo: projects,
		jobsRepo:    jobs,
		exporter:    exporter,
		logger:      logger,
	}
}

// IngestFile implements v1.ExtractionServiceServer
func (s *ExtractionService) IngestFile(ctx context.Context, req *v1.IngestFileRequest) (*v1.IngestResponse, error) {
	pid := strings.TrimSpace(req.GetProjectId())
	if pid == "" {
		s.logger.Error("ingest request missing project_id")
		return nil, status.Error(codes.InvalidArgument, "project_id is required")
	}
	projectID, err := uuid.Parse(pid)
	if err != nil {
		s.logger.Error("invalid project_id format for ingest", "project_id", pid, "error", err)
		return nil, status.Error(codes.InvalidArgument, "project_id must be a UUID")
	}

	path := strings.TrimSpace(req.GetPath())
	if path == "" {
		s.logger.Error("ingest request missing path", "project_id", projectID)
		return nil, status.Error(codes.InvalidArgument, "path is required")
	}

	if exists, _ := s.projectRepo.Exists(ctx, projectID); !exists {
		s.logger.Error("project not found for ingest", "project_id", projectID)
		return nil, status.Error(codes.InvalidArgument, "project not found")
	}
	ctx = common.WithProjectID(ctx, projectID.String())

	s.logger.Info("starting file ingest", "project_id", projectID, "path", path)
	r, err := s.ingestor.IngestPath(ctx, projectID, path)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "ingest: %v", err)
	}
	s.logger.Info("file ingest succeeded", "project_id", projectID, "document_id", r.DocumentID, "deduplicated", r.Deduplicated)

	resp := &v1.IngestResponse{
		DocumentId:     r.DocumentID,
		Deduplicated:   r.Deduplicated,
		ContentHashHex: r.HashHex,
		FileExt:        r.FileExt,
		UploadedAt:     r.UploadedAt.UTC().Format(time.RFC3339),
		SourcePath:     r.SourcePath,
		Error:          "",
	}

	docUUID, _ := uuid.Parse(r.DocumentID)
	s.logger.Info("starting document processing", "document_id", r.DocumentID)
	jobID, err := s.processor.ProcessDocument(ctx, docUUID)
	if jobID != uuid.Nil {
		resp.JobId = jobID.String()
	}
	if err != nil {
		s.logger.Error("pipeline.failed", "document_id", r.DocumentID, "err", err)
		resp.Error = err.Error()
	}
	return resp, nil
}

// resolveSkipHidden defaults to true when the optional field is unset, so
// dotfiles are skipped unless the caller explicitly asks for them.
func resolveSkipHidden(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func (s *ExtractionService) IngestDirectory(ctx context.Context, req *v1.IngestDirectoryRequest) (*v1.IngestDirectoryResponse, error) {
	pid := strings.TrimSpace(req.GetProjectId())
	if pid == "" {
		s.logger.Error("ingest directory request missing project_id")
		return nil, status.Error(codes.InvalidArgument, "project_id is required")
	}
	projectID, err := uuid.Parse(pid)
	if err != nil {
		s.logger.Error("invalid project_id format for ingest directory", "project_id", pid, "error", err)
		return nil, status.Error(codes.InvalidArgument, "project_id must be a UUID")
	}
	root := strings.TrimSpace(req.GetRootPath())
	if root == "" {
		s.logger.Error("ingest directory request missing root_path", "project_id", projectID)
		return nil, status.Error(codes.InvalidArgument, "root_path is required")
	}

	skipHidden := resolveSkipHidden(req.SkipHidden)

	if exists, _ := s.projectRepo.Exists(ctx, projectID); !exists {
		s.logger.Error("project not found for ingest directory", "project_id", projectID)
		return nil, status.Error(codes.InvalidArgument, "project not found")
	}
	ctx = common.WithProjectID(ctx, projectID.String())

	s.logger.Info("starting directory ingest", "project_id", projectID, "root", root, "skip_hidden", skipHidden)
	results, stats, err := s.ingestor.IngestDirectory(ctx, projectID, root, skipHidden)
	if err != nil {
		// DB and file errors are already logged in repository/ingest layers
		return nil, status.Errorf(codes.InvalidArgument, "ingest directory: %v", err)
	}
	s.logger.Info("directory ingest completed", "project_id", projectID, "scanned", stats.Scanned, "matched", stats.Matched, "succeeded", stats.Succeeded, "deduplicated", stats.Deduplicated, "failed", stats.Failed)

	out := &v1.IngestDirectoryResponse{
		Scanned:      stats.Scanned,
		Matched:      stats.Matched,
		Succeeded:    stats.Succeeded,
		Deduplicated: stats.Deduplicated,
		Failed:       stats.Failed,
		Results:      make([]*v1.IngestResponse, 0, len(results)),
	}

	s.logger.Info("starting processing of ingested documents", "project_id", projectID, "document_count", len(results))
	for _, r := range results {
		item := &v1.IngestResponse{
			DocumentId:     r.DocumentID,
			Deduplicated:   r.Deduplicated,
			ContentHashHex: r.HashHex,
			FileExt:        r.FileExt,
			UploadedAt:     r.UploadedAt.UTC().Format(time.RFC3339),
			SourcePath:     r.SourcePath,
			Error:          r.Err,
		}

		if r.Err == "" && r.DocumentID != "" {
			if docUUID, err := uuid.Parse(r.DocumentID); err == nil {
				jobID, pErr := s.processor.ProcessDocument(ctx, docUUID)
				if jobID != uuid.Nil {
					item.JobId = jobID.String()
				}
				// a single bad document must not abort the batch
				if pErr != nil {
					s.logger.Error("pipeline.failed", "document_id", r.DocumentID, "err", pErr)
					item.Error = pErr.Error()
				}
			}
		}

		out.Results = append(out.Results, item)
	}
	return out, nil
}
