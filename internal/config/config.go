// Package config は収集処理とサーバーの設定を YAML ファイルと環境変数から読み込みます
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"jo3qma.com/ebay_listings/internal/infrastructure/ebay"
	"jo3qma.com/ebay_listings/internal/infrastructure/report"
)

// DefaultQuery は検索ワードのデフォルト値です
const DefaultQuery = "3080 evga ftw3"

const (
	DriverHTTP  = "http"
	DriverColly = "colly"
)

var (
	ErrMissingSearchQuery = errors.New("search query is required")
	ErrInvalidMaxPages    = errors.New("max pages must be at least 1")
)

type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Report  ReportConfig  `yaml:"report"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type SearchConfig struct {
	Query           string `yaml:"query"`
	MaxPages        int    `yaml:"max_pages"`
	PageURLTemplate string `yaml:"page_url_template"`
}

type FetcherConfig struct {
	Driver    string        `yaml:"driver"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// ReportConfig は追加の出力先です。空の項目は無効になります
type ReportConfig struct {
	CSVPath     string `yaml:"csv_path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisStream string `yaml:"redis_stream"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default はすべての項目にデフォルト値を設定した Config を返します
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Query:           DefaultQuery,
			MaxPages:        4,
			PageURLTemplate: ebay.DefaultPageURLTemplate,
		},
		Fetcher: FetcherConfig{
			Driver:  DriverHTTP,
			Timeout: 30 * time.Second,
		},
		Report: ReportConfig{
			RedisStream: report.DefaultStream,
		},
		Server: ServerConfig{
			Port:         8000,
			ReadTimeout:  15 * time.Second,
			// 検索RPCは全ページの取得を待つため長めにとる
			WriteTimeout: 2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load はデフォルト値に YAML ファイル（path が空なら省略）と環境変数を順に重ねて検証します
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Search.Query = getEnvOrDefault("SEARCH_QUERY", c.Search.Query)
	c.Search.MaxPages = getEnvIntOrDefault("SEARCH_MAX_PAGES", c.Search.MaxPages)
	c.Search.PageURLTemplate = getEnvOrDefault("SEARCH_PAGE_URL_TEMPLATE", c.Search.PageURLTemplate)

	c.Fetcher.Driver = getEnvOrDefault("FETCHER_DRIVER", c.Fetcher.Driver)
	c.Fetcher.Timeout = getEnvDurationOrDefault("FETCHER_TIMEOUT", c.Fetcher.Timeout)
	c.Fetcher.UserAgent = getEnvOrDefault("FETCHER_USER_AGENT", c.Fetcher.UserAgent)

	c.Report.CSVPath = getEnvOrDefault("REPORT_CSV_PATH", c.Report.CSVPath)
	c.Report.RedisAddr = getEnvOrDefault("REDIS_ADDR", c.Report.RedisAddr)
	c.Report.RedisStream = getEnvOrDefault("REDIS_STREAM", c.Report.RedisStream)

	c.Server.Port = getEnvIntOrDefault("PORT", c.Server.Port)

	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", c.Logging.Format)
}

// Validate は取得を始める前に検出すべき設定の誤りを返します
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Search.Query) == "" {
		return ErrMissingSearchQuery
	}
	if c.Search.MaxPages < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxPages, c.Search.MaxPages)
	}
	if !strings.Contains(c.Search.PageURLTemplate, "{page}") {
		return fmt.Errorf("page url template must contain {page}: %q", c.Search.PageURLTemplate)
	}
	switch c.Fetcher.Driver {
	case DriverHTTP, DriverColly:
	default:
		return fmt.Errorf("unknown fetcher driver: %q", c.Fetcher.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
