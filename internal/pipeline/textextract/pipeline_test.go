package textextract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpad300/godmode-docs/constants"
	"github.com/rpad300/godmode-docs/gen/ent"
	"github.com/rpad300/godmode-docs/internal/extractor"
)

type fakeDocs struct {
	rows map[uuid.UUID]*ent.Document
}

func (f *fakeDocs) GetByID(_ context.Context, id uuid.UUID) (*ent.Document, error) {
	if row, ok := f.rows[id]; ok {
		return row, nil
	}
	return nil, &ent.NotFoundError{}
}

func (f *fakeDocs) GetByProjectAndHash(context.Context, uuid.UUID, []byte) (*ent.Document, error) {
	return nil, &ent.NotFoundError{}
}

func (f *fakeDocs) Create(context.Context, uuid.UUID, string, string, string, int, []byte, time.Time) (*ent.Document, error) {
	return nil, nil
}

func (f *fakeDocs) UpsertByHash(context.Context, uuid.UUID, string, string, string, int, []byte, time.Time) (*ent.Document, bool, error) {
	return nil, false, nil
}

type jobRecord struct {
	status  string
	content string
	method  string
	pages   []string
	errMsg  string
}

type fakeJobs struct {
	jobID uuid.UUID
	rec   jobRecord
}

func (f *fakeJobs) GetByID(context.Context, uuid.UUID) (*ent.ExtractJob, error) {
	return &ent.ExtractJob{ID: f.jobID}, nil
}

func (f *fakeJobs) Start(_ context.Context, _, _ uuid.UUID, format, status string) (*ent.ExtractJob, error) {
	f.rec.status = status
	return &ent.ExtractJob{ID: f.jobID, Format: format}, nil
}

func (f *fakeJobs) FinishText(_ context.Context, _ uuid.UUID, content, method string, _ int) error {
	f.rec = jobRecord{status: string(constants.JobStatusTextOK), content: content, method: method}
	return nil
}

func (f *fakeJobs) MarkNeedsVision(_ context.Context, _ uuid.UUID, content string, pageImages []string, method string) error {
	f.rec = jobRecord{status: string(constants.JobStatusNeedsVision), content: content, pages: pageImages, method: method}
	return nil
}

func (f *fakeJobs) FinishVision(_ context.Context, _ uuid.UUID, content, method string) error {
	f.rec = jobRecord{status: string(constants.JobStatusVisionOK), content: content, method: method}
	return nil
}

func (f *fakeJobs) FinishFailure(_ context.Context, _ uuid.UUID, message string) error {
	f.rec = jobRecord{status: string(constants.JobStatusFailed), errMsg: message}
	return nil
}

func (f *fakeJobs) ListByProject(context.Context, uuid.UUID, *time.Time, *time.Time) ([]*ent.ExtractJob, error) {
	return nil, nil
}

func newTestPipeline(t *testing.T, doc *ent.Document) (*Pipeline, *fakeJobs) {
	t.Helper()
	docs := &fakeDocs{rows: map[uuid.UUID]*ent.Document{doc.ID: doc}}
	jobs := &fakeJobs{jobID: uuid.New()}
	ex := extractor.NewExtractor(extractor.Config{DataDir: t.TempDir()}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewPipeline(docs, jobs, ex, nil), jobs
}

func TestRun_PlainTextFinishes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := &ent.Document{ID: uuid.New(), ProjectID: uuid.New(), SourcePath: path, FileExt: "txt"}
	p, jobs := newTestPipeline(t, doc)

	jobID, res, err := p.Run(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if jobID != jobs.jobID {
		t.Errorf("jobID = %s, want %s", jobID, jobs.jobID)
	}
	if jobs.rec.status != string(constants.JobStatusTextOK) {
		t.Errorf("status = %q, want TEXT_OK", jobs.rec.status)
	}
	if jobs.rec.content != "hello world" || jobs.rec.method != "plain" {
		t.Errorf("content=%q method=%q", jobs.rec.content, jobs.rec.method)
	}
	if res.NeedsVision {
		t.Error("plain text must not need vision")
	}
}

func TestRun_ImageParksForVision(t *testing.T) {
	path := "/data/scans/receipt.png"
	doc := &ent.Document{ID: uuid.New(), ProjectID: uuid.New(), SourcePath: path, FileExt: "png"}
	p, jobs := newTestPipeline(t, doc)

	_, res, err := p.Run(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if jobs.rec.status != string(constants.JobStatusNeedsVision) {
		t.Fatalf("status = %q, want NEEDS_VISION", jobs.rec.status)
	}
	want := "[IMAGE:" + path + "]"
	if jobs.rec.content != want {
		t.Errorf("content = %q, want %q", jobs.rec.content, want)
	}
	if len(jobs.rec.pages) != 1 || jobs.rec.pages[0] != path {
		t.Errorf("pages = %v, want [%s]", jobs.rec.pages, path)
	}
	if !res.NeedsVision {
		t.Error("image must need vision")
	}
}

func TestRun_UnreadableBinaryFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x01, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	doc := &ent.Document{ID: uuid.New(), ProjectID: uuid.New(), SourcePath: path, FileExt: "bin"}
	p, jobs := newTestPipeline(t, doc)

	_, _, err := p.Run(context.Background(), doc.ID)
	if err == nil {
		t.Fatal("want error for unextractable file")
	}
	if jobs.rec.status != string(constants.JobStatusFailed) {
		t.Errorf("status = %q, want FAILED", jobs.rec.status)
	}
	if !strings.Contains(jobs.rec.errMsg, "Binary file") {
		t.Errorf("errMsg = %q, want binary placeholder", jobs.rec.errMsg)
	}
}

func TestRun_UnknownDocumentErrors(t *testing.T) {
	doc := &ent.Document{ID: uuid.New(), SourcePath: "x.txt", FileExt: "txt"}
	p, _ := newTestPipeline(t, doc)

	if _, _, err := p.Run(context.Background(), uuid.New()); err == nil {
		t.Fatal("want error for unknown document")
	}
}
