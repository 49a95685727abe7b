package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/gen/ent"
	entdoc "github.com/rpad300/godmode-docs/gen/ent/document"
)

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ent.Document, error)
	GetByProjectAndHash(ctx context.Context, projectID uuid.UUID, hash []byte) (*ent.Document, error)
	Create(ctx context.Context, projectID uuid.UUID, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*ent.Document, error)
	UpsertByHash(ctx context.Context, projectID uuid.UUID, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*ent.Document, bool, error)
}

type documentRepo struct {
	ent    *ent.Client
	logger *slog.Logger
}

func NewDocumentRepository(entc *ent.Client, logger *slog.Logger) DocumentRepository {
	return &documentRepo{
		ent:    entc,
		logger: logger,
	}
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*ent.Document, error) {
	return r.ent.Document.Get(ctx, id)
}

func (r *documentRepo) GetByProjectAndHash(ctx context.Context, projectID uuid.UUID, hash []byte) (*ent.Document, error) {
	row, err := r.ent.Document.Query().
		Where(
			entdoc.ProjectID(projectID),
			entdoc.ContentHash(hash),
		).Only(ctx)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *documentRepo) Create(ctx context.Context, projectID uuid.UUID, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*ent.Document, error) {
	row, err := r.ent.Document.Create().
		SetProjectID(projectID).
		SetSourcePath(sourcePath).
		SetFilename(filename).
		SetFileExt(ext).
		SetFileSize(size).
		SetContentHash(hash).
		SetUploadedAt(uploadedAt).
		Save(ctx)
	if err != nil {
		r.logger.Error("failed to create document", "project_id", projectID, "source_path", sourcePath, "error", err)
		return nil, err
	}
	return row, nil
}

func (r *documentRepo) UpsertByHash(ctx context.Context, projectID uuid.UUID, sourcePath, filename, ext string, size int, hash []byte, uploadedAt time.Time) (*ent.Document, bool, error) {
	if existing, err := r.GetByProjectAndHash(ctx, projectID, hash); err == nil {
		return existing, true, nil
	}
	row, err := r.Create(ctx, projectID, sourcePath, filename, ext, size, hash, uploadedAt)
	if err != nil {
		r.logger.Error("failed to upsert document by hash", "project_id", projectID, "source_path", sourcePath, "error", err)
		return nil, false, err
	}
	return row, false, nil
}
