package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/entity"
	"github.com/rpad300/godmode-docs/internal/repository"
	"github.com/rpad300/godmode-docs/internal/utils"
)

// Service handles project business logic.
type Service struct {
	projectRepo repository.ProjectRepository
	logger      *slog.Logger
}

// NewService creates a new project service.
func NewService(projectRepo repository.ProjectRepository, logger *slog.Logger) *Service {
	return &Service{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProjectRequest represents project creation parameters.
type CreateProjectRequest struct {
	Name        string
	Description string
}

// CreateProject creates a new project.
func (s *Service) CreateProject(ctx context.Context, req CreateProjectRequest) (*entity.Project, error) {
	validator := common.NewValidator()
	validator.Field("name", req.Name, common.Required, common.MaxLength(120))

	if err := common.ValidateAndReturnError(validator); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)

	descPtr := &desc
	if desc == "" {
		descPtr = nil
	}

	p, err := s.projectRepo.Create(ctx, name, descPtr)
	if err != nil {
		return nil, common.InternalErrorf("create project: %v", err)
	}

	s.logger.Info("project created successfully", "project_id", p.ID, "name", p.Name)
	return utils.ToProject(p), nil
}

// GetProject returns one project by id.
func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundError("project not found")
	}
	return utils.ToProject(p), nil
}

// ListProjects returns all projects.
func (s *Service) ListProjects(ctx context.Context) ([]*entity.Project, error) {
	s.logger.Info("listing projects")

	plist, err := s.projectRepo.List(ctx)
	if err != nil {
		// DB error already logged in repository layer
		return nil, common.InternalErrorf("list projects: %v", err)
	}

	out := make([]*entity.Project, 0, len(plist))
	for _, p := range plist {
		out = append(out, utils.ToProject(p))
	}
	s.logger.Info("projects listed successfully", "count", len(out))
	return out, nil
}
