package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

type fakeSearchRepo struct {
	mu      sync.Mutex
	pages   map[int]*model.SearchPage
	fail    map[int]bool
	fetched []int
}

func (r *fakeSearchRepo) FetchPage(ctx context.Context, query string, page int) (*model.SearchPage, error) {
	r.mu.Lock()
	r.fetched = append(r.fetched, page)
	r.mu.Unlock()

	if r.fail[page] {
		return nil, &repository.FetchError{Page: page, StatusCode: 503, Err: errors.New("service unavailable")}
	}
	if p, ok := r.pages[page]; ok {
		return p, nil
	}
	return &model.SearchPage{Number: page}, nil
}

func (r *fakeSearchRepo) fetchedPages() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	got := slices.Clone(r.fetched)
	slices.Sort(got)
	return got
}

type captureSink struct {
	reports []*model.Report
	err     error
}

func (s *captureSink) Emit(ctx context.Context, report *model.Report) error {
	s.reports = append(s.reports, report)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUsecase(repo repository.SearchPageRepository, sink repository.ReportSink) *CollectUsecase {
	u := NewCollectUsecase(repo, sink, discardLogger())
	u.newID = func() string { return "run-test" }
	u.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return u
}

func twoListingPage(n int, labels []string, first, second model.RawListingFields) *model.SearchPage {
	return &model.SearchPage{
		Number: n,
		Rows: []model.RawListingFields{
			{Title: "Shop on eBay", PriceText: "$20.00", ShippingText: "Free shipping"},
			first,
			second,
		},
		PaginationLabels: labels,
	}
}

func TestCollectUsecase_Collect_twoPagesWithPlaceholders(t *testing.T) {
	t.Parallel()

	repo := &fakeSearchRepo{pages: map[int]*model.SearchPage{
		1: twoListingPage(1, []string{"1", "2"},
			model.RawListingFields{Title: "New Listing auction", ItemURL: "u1", PriceText: "$5.00", ShippingText: "Free shipping", ListingTypeText: "3 bids"},
			model.RawListingFields{Title: "fixed 30", ItemURL: "u2", PriceText: "$30.00", ShippingText: "Free shipping", ListingTypeText: "Buy It Now"},
		),
		2: twoListingPage(2, []string{"1", "2"},
			model.RawListingFields{Title: "both 12.34/56.78", ItemURL: "u3", PriceText: "$12.34$56.78", ShippingText: "$2.50", ListingTypeText: "1 bid"},
			model.RawListingFields{Title: "fixed 10", ItemURL: "u4", PriceText: "$10.00", ShippingText: "Free shipping"},
		),
	}}
	sink := &captureSink{}

	report, err := newTestUsecase(repo, sink).Collect(context.Background(), CollectRequest{Query: "3080 evga ftw3", MaxPages: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.fetchedPages(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("fetched pages got %v, want [1 2]", got)
	}
	if len(report.Listings) != 4 {
		t.Fatalf("listings got %d, want 4", len(report.Listings))
	}

	var urls []string
	for _, l := range report.Listings {
		urls = append(urls, l.ItemURL())
	}
	// 即決価格あり（安い順）→ 即決価格なし
	want := []string{"u4", "u2", "u3", "u1"}
	if !slices.Equal(urls, want) {
		t.Fatalf("order got %v, want %v", urls, want)
	}
	if report.Listings[3].Title() != "auction" {
		t.Fatalf("title got %q, want %q", report.Listings[3].Title(), "auction")
	}

	if report.MaxPage != 2 || report.PagesFetched != 2 || report.Partial() {
		t.Fatalf("report got max=%d fetched=%d failed=%v", report.MaxPage, report.PagesFetched, report.FailedPages)
	}
	if report.RunID != "run-test" || report.Query != "3080 evga ftw3" {
		t.Fatalf("report got run_id=%q query=%q", report.RunID, report.Query)
	}
	if len(sink.reports) != 1 || sink.reports[0] != report {
		t.Fatalf("sink got %d reports, want the returned report once", len(sink.reports))
	}
}

func TestCollectUsecase_Collect_failedPageKeepsSiblings(t *testing.T) {
	t.Parallel()

	row := func(url string) model.RawListingFields {
		return model.RawListingFields{Title: url, ItemURL: url, PriceText: "$1.00", ShippingText: "Free shipping"}
	}
	repo := &fakeSearchRepo{
		pages: map[int]*model.SearchPage{
			1: twoListingPage(1, []string{"1", "2", "3"}, row("a"), row("b")),
			3: twoListingPage(3, []string{"1", "2", "3"}, row("c"), row("d")),
		},
		fail: map[int]bool{2: true},
	}

	report, err := newTestUsecase(repo, nil).Collect(context.Background(), CollectRequest{Query: "q", MaxPages: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.fetchedPages(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("fetched pages got %v, want [1 2 3]", got)
	}
	if len(report.Listings) != 4 {
		t.Fatalf("listings got %d, want 4", len(report.Listings))
	}
	if !slices.Equal(report.FailedPages, []int{2}) || !report.Partial() {
		t.Fatalf("FailedPages got %v, want [2]", report.FailedPages)
	}
}

func TestCollectUsecase_Collect_firstPageFailureFallsBackToSeed(t *testing.T) {
	t.Parallel()

	repo := &fakeSearchRepo{fail: map[int]bool{1: true}}

	report, err := newTestUsecase(repo, nil).Collect(context.Background(), CollectRequest{Query: "q", MaxPages: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.fetchedPages(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("fetched pages got %v, want [1 2 3]", got)
	}
	if !slices.Equal(report.FailedPages, []int{1}) {
		t.Fatalf("FailedPages got %v, want [1]", report.FailedPages)
	}
	if len(report.Listings) != 0 {
		t.Fatalf("listings got %d, want 0", len(report.Listings))
	}
}

func TestCollectUsecase_Collect_skipsMalformedRows(t *testing.T) {
	t.Parallel()

	repo := &fakeSearchRepo{pages: map[int]*model.SearchPage{
		1: {Number: 1, Rows: []model.RawListingFields{
			{Title: "ok", PriceText: "$1.00", ShippingText: "Free shipping"},
			{Title: "bad", PriceText: "1.00", ShippingText: "Free shipping"},
		}},
	}}

	report, err := newTestUsecase(repo, nil).Collect(context.Background(), CollectRequest{Query: "q", MaxPages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Listings) != 1 || report.SkippedRows != 1 {
		t.Fatalf("got %d listings %d skipped, want 1 and 1", len(report.Listings), report.SkippedRows)
	}
}

func TestCollectUsecase_Collect_invalidRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  CollectRequest
	}{
		{name: "empty query", req: CollectRequest{Query: "  ", MaxPages: 4}},
		{name: "zero pages", req: CollectRequest{Query: "q", MaxPages: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeSearchRepo{}
			_, err := newTestUsecase(repo, nil).Collect(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("got error %v, want %v", err, ErrInvalidRequest)
			}
			if len(repo.fetchedPages()) != 0 {
				t.Fatalf("expected no fetch, got %v", repo.fetchedPages())
			}
		})
	}
}

func TestCollectUsecase_Collect_returnsReportWithSinkError(t *testing.T) {
	t.Parallel()

	sinkErr := errors.New("sink down")
	repo := &fakeSearchRepo{}

	report, err := newTestUsecase(repo, &captureSink{err: sinkErr}).Collect(context.Background(), CollectRequest{Query: "q", MaxPages: 1})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("got error %v, want %v", err, sinkErr)
	}
	if report == nil {
		t.Fatalf("expected report alongside sink error")
	}
}
