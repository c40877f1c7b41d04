package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/office-text-extractor/internal/config"
	"github.com/kirillkom/office-text-extractor/internal/core/extract"
	"github.com/kirillkom/office-text-extractor/internal/core/ports"
	"github.com/kirillkom/office-text-extractor/internal/core/usecase"
	"github.com/kirillkom/office-text-extractor/internal/infrastructure/extractor/office"
	"github.com/kirillkom/office-text-extractor/internal/infrastructure/queue/nats"
	"github.com/kirillkom/office-text-extractor/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/office-text-extractor/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Pipeline  *extract.Pipeline
	Queue     ports.MessageQueue
	Repo      ports.ExtractionRepository
	SubmitUC  ports.ExtractionSubmitter
	ProcessUC ports.ExtractionProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewExtractionRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init payload storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, logger)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	pipeline := extract.New(extract.Config{Logger: logger})
	extractor := office.NewExtractor(storage, pipeline)

	submitUC := usecase.NewSubmitExtractionUseCase(repo, storage, queue)
	processUC := usecase.NewProcessExtractionUseCase(repo, extractor)

	return &App{
		Config: cfg,

		Pipeline: pipeline,
		Queue:    queue,
		Repo:     repo,

		SubmitUC:  submitUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
