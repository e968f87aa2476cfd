package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"retaildash/internal/config"
	"retaildash/internal/infrastructure"
	"retaildash/internal/services"
)

func main() {
	datasetPath := flag.String("dataset", "", "dataset file to analyze (defaults to the configured path)")
	outputDir := flag.String("out", "", "output directory for CSV reports (defaults to the configured exports dir)")
	reports := flag.String("reports", "", "comma-separated report names (defaults to all)")
	list := flag.Bool("list", false, "list available report names and exit")
	flag.Parse()

	if *list {
		for _, name := range services.ReportNames() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *datasetPath != "" {
		cfg.Data.DatasetPath = *datasetPath
	}
	if *outputDir == "" {
		*outputDir = cfg.Data.ExportsDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	svc := services.NewDashboardService(cfg, logger, infrastructure.NewMetrics())
	ctx := context.Background()

	logger.Info("generating reports",
		slog.String("dataset", cfg.Data.DatasetPath),
		slog.String("output_dir", *outputDir))

	if *reports == "" {
		if err := svc.ExportAll(ctx, *outputDir); err != nil {
			logger.Error("report generation failed", "error", err)
			os.Exit(1)
		}
		logger.Info("reports written", slog.Int("count", len(services.ReportNames())))
		return
	}

	names := strings.Split(*reports, ",")
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := exportOne(ctx, svc, name, *outputDir); err != nil {
			logger.Error("report generation failed",
				slog.String("report", name),
				"error", err)
			os.Exit(1)
		}
	}
	logger.Info("reports written", slog.Int("count", len(names)))
}

func exportOne(ctx context.Context, svc *services.DashboardService, name, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := svc.Export(ctx, name, file); err != nil {
		return err
	}
	return file.Close()
}
