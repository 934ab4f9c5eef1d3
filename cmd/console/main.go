package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/mkuznetsov/finsight/internal/adapters/tui"
	"github.com/mkuznetsov/finsight/internal/bootstrap"
	"github.com/mkuznetsov/finsight/internal/config"
	"github.com/mkuznetsov/finsight/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if path := os.Getenv("FINSIGHT_CONFIG"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			log.Fatalf("config error: %v", err)
		}
		cfg = loaded
	}

	// The terminal belongs to the UI; logs go to a file.
	logger, closer, err := logging.NewFileLogger(cfg.LogFile, "console", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging error: %v", err)
	}
	defer closer.Close()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	if !app.Identity.SignedIn() {
		fmt.Fprintln(os.Stderr, "not signed in: set FINSIGHT_API_TOKEN")
		os.Exit(1)
	}

	go func() {
		addr := ":" + cfg.MetricsPort
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		logger.Info("metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics server stopped", "err", err)
		}
	}()

	model := tui.NewModel(tui.Deps{
		Service:    app.Service,
		Dispatcher: app.Dispatcher,
		Poller:     app.Poller,
		Logger:     logger,
		Metrics:    app.Metrics,
		PageSize:   cfg.PageSize,
		SearchTopK: cfg.SearchTopK,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("console exited", "err", err)
		os.Exit(1)
	}
}
