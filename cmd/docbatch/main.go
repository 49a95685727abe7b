package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rpad300/godmode-docs/gen/ent"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/export"
	"github.com/rpad300/godmode-docs/internal/extractor"
	"github.com/rpad300/godmode-docs/internal/ingest"
	processor "github.com/rpad300/godmode-docs/internal/pipeline"
	"github.com/rpad300/godmode-docs/internal/pipeline/textextract"
	"github.com/rpad300/godmode-docs/internal/pipeline/visionresult"
	repo "github.com/rpad300/godmode-docs/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem    = flag.Bool("inmem", true, "use in-memory SQLite database")
		dir      = flag.String("dir", "", "directory to process documents from (required)")
		out      = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		project  = flag.String("project", "Local Batch", "project name")
		parallel = flag.Int("parallel", 4, "concurrent extraction workers")
		fromStr  = flag.String("from", "", "from date YYYY-MM-DD")
		toStr    = flag.String("to", "", "to date YYYY-MM-DD")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "extractions.xlsx")
	}

	var from, to *time.Time
	if *fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", *fromStr); err != nil {
			printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			from = &parsed
		}
	}
	if *toStr != "" {
		if parsed, err := time.Parse("2006-01-02", *toStr); err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			to = &parsed
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()

	var entc *ent.Client
	if *inmem {
		c, err := repo.OpenSQLite(ctx, repo.InMemoryDSN, logger)
		if err != nil {
			logger.Error("failed to open sqlite database", "error", err)
			os.Exit(1)
		}
		entc = c
		defer entc.Close()
	} else {
		c, pool, err := repo.Open(ctx, repo.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		entc = c
		defer repo.Close(c, pool, logger)
	}

	projectsRepo := repo.NewProjectRepository(entc, logger)
	documentsRepo := repo.NewDocumentRepository(entc, logger)
	jobsRepo := repo.NewExtractJobRepository(entc, logger)

	proj, err := projectsRepo.GetOrCreateByName(ctx, *project)
	if err != nil {
		logger.Error("failed to get or create project", "error", err)
		os.Exit(1)
	}
	logger.Info("using project", "id", proj.ID, "name", proj.Name)

	ex := extractor.NewExtractor(extractor.Config{
		DataDir:     cfg.Extractor.DataDir,
		Markitdown:  cfg.Extractor.Markitdown,
		Pdftoppm:    cfg.Extractor.Pdftoppm,
		Magick:      cfg.Extractor.Magick,
		DPI:         cfg.Extractor.DPI,
		RichTimeout: cfg.Extractor.RichTimeout,
	}, logger)

	textPipe := textextract.NewPipeline(documentsRepo, jobsRepo, ex, logger)
	visionPipe := visionresult.NewPipeline(jobsRepo, logger)
	proc := processor.NewProcessor(logger, textPipe, visionPipe)

	ingestor := ingest.NewFSIngestor(projectsRepo, documentsRepo, logger)

	logger.Info("starting ingestion", "dir", *dir, "project", proj.ID)
	ingestionResults, stats, err := ingestor.IngestDirectory(ctx, proj.ID, *dir, true)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}

	var ingested []uuid.UUID
	for _, result := range ingestionResults {
		if result.Err == "" {
			docID, err := uuid.Parse(result.DocumentID)
			if err != nil {
				logger.Error("failed to parse document ID", "document_id", result.DocumentID, "error", err)
				continue
			}
			ingested = append(ingested, docID)
		}
	}
	logger.Info("ingestion complete",
		"documents_ingested", len(ingested),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated)

	// Bounded parallel extraction; each worker may spawn one subprocess.
	// Failures are recorded on the job row, never aborting the batch.
	var failures int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	results := make(chan error, len(ingested))
	for _, docID := range ingested {
		docID := docID
		g.Go(func() error {
			_, perr := proc.ProcessDocument(gctx, docID)
			results <- perr
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	processed := 0
	for perr := range results {
		if perr != nil {
			failures++
		} else {
			processed++
		}
	}

	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(jobsRepo, documentsRepo, logger)

	xlsxBytes, err := exportService.ExportJobsXLSX(ctx, proj.ID, from, to)
	if err != nil {
		logger.Error("failed to export jobs", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"documents_ingested", len(ingested),
		"documents_processed", processed,
		"failures", failures,
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents ingested: %d\n", len(ingested))
	fmt.Printf("- Documents processed: %d\n", processed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
}
