package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rpad300/godmode-docs/constants"
	"github.com/rpad300/godmode-docs/gen/ent"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestClient(t *testing.T, name string) *ent.Client {
	t.Helper()
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	client, err := OpenSQLite(context.Background(), dsn, discardLogger())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestListByProjectIncludesWholeToDay(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t, "listjobs_window")

	proj, err := client.Project.Create().SetName("window-test").Save(ctx)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	doc, err := client.Document.Create().
		SetProjectID(proj.ID).
		SetSourcePath("/tmp/report.txt").
		SetContentHash([]byte{0x01, 0x02}).
		SetFilename("report.txt").
		SetFileExt("txt").
		SetFileSize(42).
		Save(ctx)
	if err != nil {
		t.Fatalf("create document: %v", err)
	}

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)
	nextNoon := noon.AddDate(0, 0, 1)

	inside, err := client.ExtractJob.Create().
		SetDocumentID(doc.ID).
		SetProjectID(proj.ID).
		SetFormat(string(constants.ClassText)).
		SetStartedAt(noon).
		SetStatus(string(constants.JobStatusTextOK)).
		Save(ctx)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := client.ExtractJob.Create().
		SetDocumentID(doc.ID).
		SetProjectID(proj.ID).
		SetFormat(string(constants.ClassText)).
		SetStartedAt(nextNoon).
		SetStatus(string(constants.JobStatusTextOK)).
		Save(ctx); err != nil {
		t.Fatalf("create job: %v", err)
	}

	repo := NewExtractJobRepository(client, discardLogger())

	// from == to: a job started mid-day on that date is still in the window.
	jobs, err := repo.ListByProject(ctx, proj.ID, &day, &day)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].ID != inside.ID {
		t.Fatalf("got job %s, want %s", jobs[0].ID, inside.ID)
	}

	// no bounds returns everything for the project
	all, err := repo.ListByProject(ctx, proj.ID, nil, nil)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d jobs, want 2", len(all))
	}
}
