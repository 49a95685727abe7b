package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	v1 "github.com/rpad300/godmode-docs/gen/proto/docs/v1"
	"github.com/rpad300/godmode-docs/internal/async"
	"github.com/rpad300/godmode-docs/internal/common"
	"github.com/rpad300/godmode-docs/internal/export"
	"github.com/rpad300/godmode-docs/internal/extractor"
	"github.com/rpad300/godmode-docs/internal/ingest"
	processor "github.com/rpad300/godmode-docs/internal/pipeline"
	"github.com/rpad300/godmode-docs/internal/pipeline/textextract"
	"github.com/rpad300/godmode-docs/internal/pipeline/visionresult"
	repo "github.com/rpad300/godmode-docs/internal/repository"
	svc "github.com/rpad300/godmode-docs/internal/server"
	"github.com/rpad300/godmode-docs/internal/services/project"
)

func main() {
	// zap for daemon lifecycle, slog for everything below it
	zl, _ := zap.NewProduction()
	defer zl.Sync()
	log := zl.Sugar()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	addr := cfg.Server.GRPCAddr
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entc, pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer repo.Close(entc, pool, logger)

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen on %s: %v", addr, err)
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(svc.RequestIDInterceptor(logger)),
	)

	projectsRepo := repo.NewProjectRepository(entc, logger)
	documentsRepo := repo.NewDocumentRepository(entc, logger)
	jobsRepo := repo.NewExtractJobRepository(entc, logger)

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

	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Workers.Count),
		async.WithQueueSize(cfg.Workers.QueueSize),
		async.WithProcessTimeout(cfg.Workers.ProcessTimeout),
	)

	ingestor := ingest.NewFSIngestor(projectsRepo, documentsRepo, logger)
	exporter := export.NewService(jobsRepo, documentsRepo, logger)

	extraction := svc.NewExtractionService(ingestor, proc, projectsRepo, jobsRepo, exporter, logger)
	v1.RegisterExtractionServiceServer(grpcServer, extraction)

	projects := svc.NewProjectService(project.NewService(projectsRepo, logger), logger)
	v1.RegisterProjectServiceServer(grpcServer, projects)

	// Optional watch mode: auto-ingest files dropped under WATCH_ROOTS.
	if roots := os.Getenv("WATCH_ROOTS"); roots != "" {
		projectID, err := uuid.Parse(os.Getenv("WATCH_PROJECT_ID"))
		if err != nil {
			log.Fatalf("WATCH_PROJECT_ID must be a UUID when WATCH_ROOTS is set: %v", err)
		}
		evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       strings.Split(roots, string(os.PathListSeparator)),
			InitialScan: true,
			Debounce:    2 * time.Second,
		})
		if err != nil {
			log.Fatalf("starting watcher: %v", err)
		}
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case werr := <-errCh:
					logger.Error("watcher error", "error", werr)
				case path, ok := <-evCh:
					if !ok {
						return
					}
					r, ierr := ingestor.IngestPath(ctx, projectID, path)
					if ierr != nil {
						logger.Error("watch ingest failed", "path", path, "error", ierr)
						continue
					}
					if r.Deduplicated {
						continue
					}
					if docID, perr := uuid.Parse(r.DocumentID); perr == nil {
						_ = queue.Enqueue(ctx, async.Job{DocumentID: docID, SubmittedAt: time.Now()})
					}
				}
			}
		}()
		log.Infof("watching %s for project %s", roots, projectID)
	}

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	log.Infof("extractord listening on %s", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	queue.Shutdown(context.Background())
	grpcServer.GracefulStop()
}
