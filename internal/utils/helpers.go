package utils

import (
	"time"

	"github.com/rpad300/godmode-docs/gen/ent"
	docspb "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/entity"
)

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func ToPBJob(j *ent.ExtractJob) *docspb.ExtractJob {
	out := &docspb.ExtractJob{
		Id:           j.ID.String(),
		DocumentId:   j.DocumentID.String(),
		ProjectId:    j.ProjectID.String(),
		Format:       j.Format,
		Status:       strOrEmpty(j.Status),
		Method:       strOrEmpty(j.Method),
		PageCount:    int32(intOrZero(j.PageCount)),
		Content:      strOrEmpty(j.Content),
		PageImages:   j.PageImages,
		StartedAt:    j.StartedAt.UTC().Format(time.RFC3339),
		ErrorMessage: strOrEmpty(j.ErrorMessage),
	}
	if j.FinishedAt != nil {
		out.FinishedAt = j.FinishedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func ToProject(e *ent.Project) *entity.Project {
	return &entity.Project{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToPBProjectFromEntity(p *entity.Project) *docspb.Project {
	return &docspb.Project{
		Id:          p.ID.String(),
		Name:        p.Name,
		Description: strOrEmpty(p.Description),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ParseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	// strip time to midnight UTC to match DATE semantics
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
