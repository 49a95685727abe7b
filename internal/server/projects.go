package server

import (
	"context"
	"strings"

	"log/slog"

	"github.com/google/uuid"
	v1 "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/services/project"
	"github.com/rpad300/godmode-docs/internal/utils"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ProjectService struct {
	v1.UnimplementedProjectServiceServer
	svc    *project.Service
	logger *slog.Logger
}

func NewProjectService(svc *project.Service, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{svc: svc, logger: logger}
}

func (s *ProjectService) CreateProject(ctx context.Context, req *v1.CreateProjectRequest) (*v1.CreateProjectResponse, error) {
	p, err := s.svc.CreateProject(ctx, project.CreateProjectRequest{
		Name:        req.GetName(),
		Description: req.GetDescription(),
	})
	if err != nil {
		// validation and repo errors already carry gRPC status
		return nil, err
	}
	return &v1.CreateProjectResponse{Project: utils.ToPBProjectFromEntity(p)}, nil
}

func (s *ProjectService) GetProject(ctx context.Context, req *v1.GetProjectRequest) (*v1.GetProjectResponse, error) {
	pid := strings.TrimSpace(req.GetProjectId())
	id, err := uuid.Parse(pid)
	if err != nil || pid == "" {
		return nil, status.Error(codes.InvalidArgument, "project_id must be a UUID")
	}
	p, err := s.svc.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &v1.GetProjectResponse{Project: utils.ToPBProjectFromEntity(p)}, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, _ *v1.ListProjectsRequest) (*v1.ListProjectsResponse, error) {
	plist, err := s.svc.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*v1.Project, 0, len(plist))
	for _, p := range plist {
		out = append(out, utils.ToPBProjectFromEntity(p))
	}
	return &v1.ListProjectsResponse{Projects: out}, nil
}
