package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/gen/ent"
	entproject "github.com/rpad300/godmode-docs/gen/ent/project"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ent.Project, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, name string, description *string) (*ent.Project, error)
	GetOrCreateByName(ctx context.Context, name string) (*ent.Project, error)
	List(ctx context.Context) ([]*ent.Project, error)
}

type projectRepo struct {
	ent    *ent.Client
	logger *slog.Logger
}

func NewProjectRepository(entc *ent.Client, logger *slog.Logger) ProjectRepository {
	return &projectRepo{ent: entc, logger: logger}
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*ent.Project, error) {
	return r.ent.Project.Get(ctx, id)
}

func (r *projectRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := r.ent.Project.Query().Where(entproject.ID(id)).Exist(ctx)
	if err != nil {
		r.logger.Error("project existence check failed", "project_id", id, "error", err)
		return false, err
	}
	return ok, nil
}

func (r *projectRepo) Create(ctx context.Context, name string, description *string) (*ent.Project, error) {
	c := r.ent.Project.Create().SetName(name)
	if description != nil {
		c = c.SetDescription(*description)
	}
	row, err := c.Save(ctx)
	if err != nil {
		r.logger.Error("failed to create project", "name", name, "error", err)
		return nil, err
	}
	return row, nil
}

func (r *projectRepo) GetOrCreateByName(ctx context.Context, name string) (*ent.Project, error) {
	row, err := r.ent.Project.Query().Where(entproject.Name(name)).Only(ctx)
	if err == nil {
		return row, nil
	}
	if !ent.IsNotFound(err) {
		r.logger.Error("project lookup failed", "name", name, "error", err)
		return nil, err
	}
	return r.Create(ctx, name, nil)
}

func (r *projectRepo) List(ctx context.Context) ([]*ent.Project, error) {
	return r.ent.Project.Query().Order(ent.Asc(entproject.FieldCreatedAt)).All(ctx)
}
