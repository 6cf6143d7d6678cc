package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"jo3qma.com/ebay_listings/internal/config"
	"jo3qma.com/ebay_listings/internal/domain/repository"
	"jo3qma.com/ebay_listings/internal/handler"
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

	// 依存関係の組み立て（依存性注入）
	// DBの代わりにScraperを注入し、取得元の差し替えをインフラ層に閉じ込める
	var fetcher ebay.Fetcher
	if cfg.Fetcher.Driver == config.DriverColly {
		fetcher = ebay.NewCollyFetcher(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgent)
	} else {
		fetcher = ebay.NewHTTPFetcher(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgent, log)
	}
	scraper := ebay.NewEbaySearchScraper(fetcher, cfg.Search.PageURLTemplate) // repository.SearchPageRepository

	var sinks []repository.ReportSink
	if cfg.Report.CSVPath != "" {
		sinks = append(sinks, report.NewCSVSink(cfg.Report.CSVPath))
	}
	if cfg.Report.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Report.RedisAddr})
		defer rdb.Close()
		sinks = append(sinks, report.NewRedisStreamSink(rdb, cfg.Report.RedisStream))
	}

	uc := usecase.NewCollectUsecase(scraper, report.NewMultiSink(sinks...), log)
	h := handler.NewListingHandler(uc, cfg.Search.MaxPages, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Connectハンドラーの登録
	path, connectHandler := handler.NewListingServiceHandler(h)
	r.Handle(path, connectHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンの設定
	go func() {
		log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// シグナル待機（Ctrl+Cなど）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
