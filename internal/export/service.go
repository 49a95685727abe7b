package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rpad300/godmode-docs/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	jobsRepo repository.ExtractJobRepository
	docsRepo repository.DocumentRepository
	logger   *slog.Logger
}

func NewService(jobs repository.ExtractJobRepository, docs repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobsRepo: jobs, docsRepo: docs, logger: logger}
}

// ExportJobsXLSX returns an XLSX workbook (as bytes) with one row per extract
// job in the given project and date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all jobs for the project.
func (s *Service) ExportJobsXLSX(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	jobs, err := s.jobsRepo.ListByProject(ctx, projectID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"Source Path",
		"Format",
		"Status",
		"Method",
		"Pages",
		"Characters",
		"Started",
		"Finished",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, j := range jobs {
		filename := ""
		sourcePath := ""
		if doc, err := s.docsRepo.GetByID(ctx, j.DocumentID); err == nil && doc != nil {
			filename = doc.Filename
			sourcePath = doc.SourcePath
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, filename)
		write(2, sourcePath)
		write(3, j.Format)
		write(4, strVal(j.Status))
		write(5, strVal(j.Method))
		write(6, intVal(j.PageCount))
		write(7, len(strVal(j.Content)))
		if !j.StartedAt.IsZero() {
			write(8, j.StartedAt.Format("2006-01-02 15:04:05"))
		}
		if j.FinishedAt != nil {
			write(9, j.FinishedAt.Format("2006-01-02 15:04:05"))
		}
		write(10, truncate(strVal(j.ErrorMessage), 140))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 28) // filename
	_ = f.SetColWidth(sheet, "B", "B", 60) // path
	_ = f.SetColWidth(sheet, "C", "E", 14) // format/status/method
	_ = f.SetColWidth(sheet, "F", "G", 12) // counts
	_ = f.SetColWidth(sheet, "H", "I", 20) // timestamps
	_ = f.SetColWidth(sheet, "J", "J", 48) // error

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"project_id", projectID.String(),
		"rows", len(jobs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
