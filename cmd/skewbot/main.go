package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"skewbot/internal/app"
	skcfg "skewbot/internal/config"
	"skewbot/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultConfig := os.Getenv("SKEWBOT_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "configs/config.yaml"
	}
	cfgPath := flag.String("config", defaultConfig, "path to the yaml config file")
	scan := flag.Bool("scan", false, "rank the top-volume universe by long/short skew instead of sending the daily report")
	candidates := flag.Int("candidates", 0, "scan mode: how many top-volume symbols to inspect")
	limit := flag.Int("limit", 0, "scan mode: how many top symbols to print")
	maxQuoteVolume := flag.Float64("max-quote-volume", 0, "scan mode: keep only symbols with 24h quote volume below this value")
	flag.Parse()

	ctx := context.Background()

	cfg, err := skcfg.Load(*cfgPath)
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("initializing log file failed: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("initializing failed: %v", err)
	}

	if *scan {
		err = application.RunScan(ctx, app.ScanOverrides{
			Candidates:     *candidates,
			Limit:          *limit,
			MaxQuoteVolume: *maxQuoteVolume,
		})
	} else {
		err = application.RunReport(ctx)
	}
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
