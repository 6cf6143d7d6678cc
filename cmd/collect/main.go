package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"jo3qma.com/ebay_listings/internal/config"
	"jo3qma.com/ebay_listings/internal/domain/repository"
	"jo3qma.com/ebay_listings/internal/infrastructure/ebay"
	"jo3qma.com/ebay_listings/internal/infrastructure/report"
	"jo3qma.com/ebay_listings/internal/logger"
	"jo3qma.com/ebay_listings/internal/usecase"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 依存関係の組み立て
	var fetcher ebay.Fetcher
	if cfg.Fetcher.Driver == config.DriverColly {
		fetcher = ebay.NewCollyFetcher(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgent)
	} else {
		fetcher = ebay.NewHTTPFetcher(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgent, log)
	}
	scraper := ebay.NewEbaySearchScraper(fetcher, cfg.Search.PageURLTemplate)

	sinks := []repository.ReportSink{report.NewConsoleSink(os.Stdout)}
	if cfg.Report.CSVPath != "" {
		sinks = append(sinks, report.NewCSVSink(cfg.Report.CSVPath))
	}
	if cfg.Report.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Report.RedisAddr})
		defer rdb.Close()
		sinks = append(sinks, report.NewRedisStreamSink(rdb, cfg.Report.RedisStream))
	}

	uc := usecase.NewCollectUsecase(scraper, report.NewMultiSink(sinks...), log)

	result, err := uc.Collect(ctx, usecase.CollectRequest{
		Query:    cfg.Search.Query,
		MaxPages: cfg.Search.MaxPages,
	})
	if err != nil {
		if result == nil {
			log.Error("collect failed", "error", err)
			os.Exit(1)
		}
		// 出力先の一部に失敗してもレポート自体は完成している
		log.Error("failed to emit report", "error", err)
	}
	if result.Partial() {
		log.Warn("some pages could not be fetched", "failed_pages", result.FailedPages)
	}
}
