package ebay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// collyFetcher は colly のコレクターを使う Fetcher の実装です
// ページごとに Clone したコレクターを使うため、並行して呼び出せます
type collyFetcher struct {
	base *colly.Collector
}

// NewCollyFetcher は colly を使う Fetcher を作成します
func NewCollyFetcher(timeout time.Duration, userAgent string) Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)
	return &collyFetcher{base: c}
}

func (f *collyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := f.base.Clone()

	var (
		body   []byte
		status int
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
		r.Headers.Set("Accept-Language", acceptLanguageHeader)
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := c.Visit(url); err != nil {
		if status != 0 && status != http.StatusOK {
			return nil, &StatusError{Code: status}
		}
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	// colly は 203 未満を成功として扱うため 200 以外はここで弾く
	if status != http.StatusOK {
		return nil, &StatusError{Code: status}
	}
	return body, nil
}
