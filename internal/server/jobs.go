package server

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	v1 "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/utils"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *ExtractionService) GetJob(ctx context.Context, req *v1.GetJobRequest) (*v1.GetJobResponse, error) {
	jid := strings.TrimSpace(req.GetJobId())
	jobID, err := uuid.Parse(jid)
	if err != nil || jid == "" {
		return nil, status.Error(codes.InvalidArgument, "job_id must be a UUID")
	}

	job, err := s.jobsRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "extract job not found")
	}
	return &v1.GetJobResponse{Job: utils.ToPBJob(job)}, nil
}

func (s *ExtractionService) CompleteVisionJob(ctx context.Context, req *v1.CompleteVisionJobRequest) (*v1.CompleteVisionJobResponse, error) {
	jid := strings.TrimSpace(req.GetJobId())
	jobID, err := uuid.Parse(jid)
	if err != nil || jid == "" {
		return nil, status.Error(codes.InvalidArgument, "job_id must be a UUID")
	}
	if len(req.GetPayload()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "payload is required")
	}

	if err := s.processor.CompleteVision(ctx, jobID, req.GetPayload()); err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case common.ErrCodeNotFound:
				return nil, status.Error(codes.NotFound, appErr.Message)
			case common.ErrCodeInvalidInput:
				return nil, status.Error(codes.InvalidArgument, appErr.Message)
			}
		}
		return nil, status.Error(codes.Internal, "complete vision job failed")
	}

	job, err := s.jobsRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, status.Error(codes.Internal, "reload job failed")
	}
	return &v1.CompleteVisionJobResponse{Job: utils.ToPBJob(job)}, nil
}
