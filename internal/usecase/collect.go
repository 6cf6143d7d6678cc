package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"jo3qma.com/ebay_listings/internal/domain/listing"
	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

// ErrInvalidRequest は収集リクエストの内容が不正な場合のエラーです
var ErrInvalidRequest = errors.New("invalid collect request")

// CollectRequest は1回の収集実行の入力です
type CollectRequest struct {
	Query    string
	MaxPages int // 取得するページ数の上限（ページ送りから判明した値でさらに小さくなります）
}

// CollectUsecase は検索結果の全ページを取得し、ランキング済みレポートを作成します
type CollectUsecase struct {
	repo   repository.SearchPageRepository
	sink   repository.ReportSink
	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// NewCollectUsecase は新しいCollectUsecaseインスタンスを作成します
// sink が nil の場合、レポートは返り値としてのみ扱われます
func NewCollectUsecase(repo repository.SearchPageRepository, sink repository.ReportSink, logger *slog.Logger) *CollectUsecase {
	return &CollectUsecase{
		repo:   repo,
		sink:   sink,
		logger: logger.With("component", "collect_usecase"),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// collectRun は1回の実行で共有される状態です
// 各ページの取得は並行して完了するため、すべての更新は mu で保護します
type collectRun struct {
	id     string
	query  string
	pages  *listing.PageSet
	logger *slog.Logger

	mu          sync.Mutex
	listings    []model.Listing
	failedPages []int
	fetched     int
	skipped     int
}

// Collect は検索結果を全ページ取得し、ランキング済みのレポートを作成します
//
// 1ページ目はページ送りから最終ページを知るために先に取得し、その後
// 2ページ目から最終ページまでを待ち合わせなしで一斉に取得します。
// 1ページ目の取得に失敗した場合は req.MaxPages までを取得します。
// 一部のページ取得に失敗しても実行は継続し、失敗したページ番号をレポートに含めます
// 出力先への書き出しに失敗した場合も、完成したレポートとエラーを合わせて返します
func (u *CollectUsecase) Collect(ctx context.Context, req CollectRequest) (*model.Report, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	if req.MaxPages < 1 {
		return nil, fmt.Errorf("%w: max pages must be at least 1, got %d", ErrInvalidRequest, req.MaxPages)
	}

	run := &collectRun{
		id:    u.newID(),
		query: query,
		pages: listing.NewPageSet(req.MaxPages),
	}
	run.logger = u.logger.With("run_id", run.id)
	run.logger.Info("collect started", "query", query, "max_pages", req.MaxPages)

	u.fetchPage(ctx, run, 1)

	var g errgroup.Group
	for page := 2; page <= run.pages.Max(); page++ {
		g.Go(func() error {
			u.fetchPage(ctx, run, page)
			return nil
		})
	}
	_ = g.Wait()

	listing.Rank(run.listings)
	slices.Sort(run.failedPages)

	report := &model.Report{
		RunID:        run.id,
		Query:        query,
		Listings:     run.listings,
		PagesFetched: run.fetched,
		FailedPages:  run.failedPages,
		SkippedRows:  run.skipped,
		MaxPage:      run.pages.Max(),
		GeneratedAt:  u.now(),
	}
	run.logger.Info("collect completed",
		"listings", len(report.Listings),
		"pages_fetched", report.PagesFetched,
		"failed_pages", report.FailedPages,
		"skipped_rows", report.SkippedRows,
	)

	if u.sink != nil {
		if err := u.sink.Emit(ctx, report); err != nil {
			return report, fmt.Errorf("failed to emit report: %w", err)
		}
	}
	return report, nil
}

// fetchPage は1ページを取得して結果を run に追加します
// 取得に失敗したページは失敗として記録するだけで、エラーは返しません
func (u *CollectUsecase) fetchPage(ctx context.Context, run *collectRun, page int) {
	logger := run.logger.With("page", page)

	result, err := u.repo.FetchPage(ctx, run.query, page)
	if err != nil {
		logger.Warn("failed to fetch page", "error", err)
		run.mu.Lock()
		run.failedPages = append(run.failedPages, page)
		run.mu.Unlock()
		return
	}

	before := run.pages.Max()
	if after, lowered := run.pages.Observe(result.PaginationLabels); lowered {
		logger.Info("max page lowered", "from", before, "to", after)
	}

	listings, skipped := listing.ExtractPage(result.Rows)
	for _, rowErr := range skipped {
		logger.Warn("skipped row", "title", rowErr.Title, "error", rowErr.Err)
	}

	run.mu.Lock()
	run.listings = append(run.listings, listings...)
	run.fetched++
	run.skipped += len(skipped)
	run.mu.Unlock()

	logger.Info("page fetched", "rows", len(result.Rows), "listings", len(listings))
}
