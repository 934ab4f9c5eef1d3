package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mkuznetsov/finsight/internal/config"
	"github.com/mkuznetsov/finsight/internal/core/ports"
	"github.com/mkuznetsov/finsight/internal/core/usecase"
	"github.com/mkuznetsov/finsight/internal/infrastructure/export"
	"github.com/mkuznetsov/finsight/internal/infrastructure/identity"
	"github.com/mkuznetsov/finsight/internal/infrastructure/preflight"
	"github.com/mkuznetsov/finsight/internal/infrastructure/remote"
	"github.com/mkuznetsov/finsight/internal/infrastructure/resilience"
	"github.com/mkuznetsov/finsight/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Service    ports.DocumentService
	Identity   ports.Identity
	Dispatcher *usecase.Dispatcher
	Poller     *usecase.Poller
	Metrics    *metrics.SyncMetrics
	Logger     *slog.Logger
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	syncMetrics := metrics.NewSyncMetrics("console")

	guardCfg := resilience.DefaultConfig()
	guardCfg.RequestsPerSecond = float64(cfg.RateLimitRPS)
	guardCfg.Burst = cfg.RateLimitBurst
	guard := resilience.NewExecutor(guardCfg)

	client := remote.New(cfg.BaseURL, cfg.APIToken,
		remote.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
		remote.WithGuard(guard),
		remote.WithMetrics(syncMetrics),
	)

	sink, err := export.NewWriter(cfg.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("init export writer: %w", err)
	}

	dispatcher := usecase.NewDispatcher(client, sink, preflight.NewInspector(),
		int64(cfg.MaxUploadMB)<<20)
	poller := usecase.NewPoller(time.Duration(cfg.PollIntervalSeconds) * time.Second)

	return &App{
		Config:     cfg,
		Service:    client,
		Identity:   identity.NewTokenSession(cfg.APIToken),
		Dispatcher: dispatcher,
		Poller:     poller,
		Metrics:    syncMetrics,
		Logger:     logger,
	}, nil
}
