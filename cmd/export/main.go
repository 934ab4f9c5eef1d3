// One-shot report export for scripting: fetches the report for a
// document and writes the JSON artifact plus the XLSX workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkuznetsov/finsight/internal/bootstrap"
	"github.com/mkuznetsov/finsight/internal/config"
	"github.com/mkuznetsov/finsight/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()

	id := flag.String("id", "", "document id to export")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	if *id == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.NewJSONLogger("export", cfg.LogLevel)

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	if !app.Identity.SignedIn() {
		fmt.Fprintln(os.Stderr, "not signed in: set FINSIGHT_API_TOKEN")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	artifacts, err := app.Dispatcher.Export(ctx, *id)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	fmt.Println(artifacts.JSONPath)
	fmt.Println(artifacts.WorkbookPath)
}
