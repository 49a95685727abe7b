package server

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	v1 "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/utils"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *ExtractionService) ExportJobs(ctx context.Context, req *v1.ExportJobsRequest) (*v1.ExportJobsResponse, error) {
	pid := strings.TrimSpace(req.GetProjectId())
	projectID, err := uuid.Parse(pid)
	if err != nil || pid == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id must be a UUID")
	}

	// Optional dates (YYYY-MM-DD):
	// - only from -> from..today (inclusive)
	// - only to   -> beginning..to (inclusive)
	// - none      -> all.
	var fromPtr, toPtr *time.Time
	if fd := strings.TrimSpace(req.GetFromDate()); fd != "" {
		t, err := utils.ParseYMD(fd)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "from_date must be YYYY-MM-DD")
		}
		fromPtr = &t
	}
	if td := strings.TrimSpace(req.GetToDate()); td != "" {
		t, err := utils.ParseYMD(td)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "to_date must be YYYY-MM-DD")
		}
		toPtr = &t
	}

	xlsx, err := s.exporter.ExportJobsXLSX(ctx, projectID, fromPtr, toPtr)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "project_id", pid, "err", err)
		return nil, status.Error(codes.Internal, "export failed")
	}

	return &v1.ExportJobsResponse{Xlsx: xlsx}, nil
}
