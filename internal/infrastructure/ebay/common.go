package ebay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPageURLTemplate は検索結果ページのURLテンプレートです
	// {query} は検索ワード（URLエンコード済み）、{page} はページ番号に置き換えられます
	DefaultPageURLTemplate = "https://www.ebay.com/sch/i.html?_from=R40&_nkw={query}&_sacat=0&_pgn={page}"

	// DefaultUserAgent は一般的なブラウザに見せかけるUser-Agentです
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"

	maxBodySize = 10 << 20
)

// Fetcher は指定されたURLからHTML本文を取得します
// 200以外のステータスは *StatusError として返します
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError は成功以外のHTTPステータスを表します
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch page: status %d", e.Code)
}

// BuildPageURL はテンプレートに検索ワードとページ番号を埋め込みます
func BuildPageURL(template, query string, page int) string {
	r := strings.NewReplacer(
		"{query}", url.QueryEscape(query),
		"{page}", strconv.Itoa(page),
	)
	return r.Replace(template)
}

type httpFetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewHTTPFetcher は net/http を使う Fetcher を作成します
func NewHTTPFetcher(timeout time.Duration, userAgent string, logger *slog.Logger) Fetcher {
	return newHTTPFetcher(&http.Client{Timeout: timeout}, userAgent, logger)
}

// newHTTPFetcher はテスト容易性のための内部コンストラクタです。
func newHTTPFetcher(client *http.Client, userAgent string, logger *slog.Logger) *httpFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &httpFetcher{
		client:    client,
		userAgent: userAgent,
		logger:    logger.With("component", "http_fetcher"),
	}
}

// Fetch は共通のヘッダー設定とステータス確認を行ってHTML本文を返します
func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			f.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
