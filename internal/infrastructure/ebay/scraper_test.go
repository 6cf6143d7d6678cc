package ebay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

const searchPageHTML = `
<html>
<body>
	<ul class="srp-results">
		<li class="s-item">
			<div class="s-item__wrapper">
				<a class="s-item__link" href="https://ebay.com/itm/0"><div class="s-item__title">Shop on eBay</div></a>
				<span class="s-item__price">$20.00</span>
			</div>
		</li>
		<li class="s-item">
			<div class="s-item__wrapper">
				<a class="s-item__link" href="https://www.ebay.com/itm/111">
					<div class="s-item__title"><span>New Listing</span>EVGA RTX 3080 FTW3 Ultra</div>
				</a>
				<span class="s-item__price"><span>$650.00</span><span>$800.00</span></span>
				<span class="s-item__logisticsCost">+$15.00 shipping</span>
				<span class="s-item__detail--primary">3 bids</span>
			</div>
		</li>
		<li class="s-item">
			<div class="s-item__wrapper">
				<a class="s-item__link" href="https://www.ebay.com/itm/222">
					<div class="s-item__title">EVGA RTX 3080 FTW3</div>
				</a>
				<span class="s-item__price">$1,099.99</span>
				<span class="s-item__logisticsCost">Free shipping</span>
				<span class="s-item__detail--primary">Buy It Now</span>
			</div>
		</li>
	</ul>
	<nav class="pagination">
		<ol class="pagination__items">
			<li><a href="?_pgn=1" aria-current="page">1</a></li>
			<li><a href="?_pgn=2">2</a></li>
			<li><a href="?_pgn=3">3</a></li>
		</ol>
	</nav>
</body>
</html>
`

type fakeFetcher struct {
	body    string
	err     error
	gotURLs []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.gotURLs = append(f.gotURLs, url)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func TestEbaySearchScraper_extractSearchPage(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchPageHTML))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}

	s := newEbaySearchScraper(nil, "", DefaultSelectors())
	page := s.extractSearchPage(doc)

	wantLabels := []string{"1", "2", "3"}
	if len(page.PaginationLabels) != len(wantLabels) {
		t.Fatalf("PaginationLabels got %v, want %v", page.PaginationLabels, wantLabels)
	}
	for i := range wantLabels {
		if page.PaginationLabels[i] != wantLabels[i] {
			t.Fatalf("PaginationLabels[%d] got %q, want %q", i, page.PaginationLabels[i], wantLabels[i])
		}
	}

	if len(page.Rows) != 3 {
		t.Fatalf("Rows len got %d, want 3", len(page.Rows))
	}

	placeholder := page.Rows[0]
	if placeholder.Title != "Shop on eBay" {
		t.Errorf("Rows[0].Title got %q, want %q", placeholder.Title, "Shop on eBay")
	}

	auction := page.Rows[1]
	if auction.Title != "New ListingEVGA RTX 3080 FTW3 Ultra" {
		t.Errorf("Rows[1].Title got %q", auction.Title)
	}
	if auction.ItemURL != "https://www.ebay.com/itm/111" {
		t.Errorf("Rows[1].ItemURL got %q", auction.ItemURL)
	}
	if auction.PriceText != "$650.00$800.00" {
		t.Errorf("Rows[1].PriceText got %q, want %q", auction.PriceText, "$650.00$800.00")
	}
	if auction.ShippingText != "+$15.00 shipping" {
		t.Errorf("Rows[1].ShippingText got %q", auction.ShippingText)
	}
	if auction.ListingTypeText != "3 bids" {
		t.Errorf("Rows[1].ListingTypeText got %q", auction.ListingTypeText)
	}

	fixed := page.Rows[2]
	if fixed.PriceText != "$1,099.99" || fixed.ShippingText != "Free shipping" || fixed.ListingTypeText != "Buy It Now" {
		t.Errorf("Rows[2] got %+v", fixed)
	}
}

func TestEbaySearchScraper_extractSearchPage_noMatchesIsEmpty(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>No exact matches found</p></body></html>"))
	if err != nil {
		t.Fatalf("failed to build doc: %v", err)
	}

	page := newEbaySearchScraper(nil, "", DefaultSelectors()).extractSearchPage(doc)
	if len(page.Rows) != 0 || len(page.PaginationLabels) != 0 {
		t.Fatalf("got %d rows %d labels, want none", len(page.Rows), len(page.PaginationLabels))
	}
}

func TestEbaySearchScraper_FetchPage_buildsURLAndSetsNumber(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{body: searchPageHTML}
	s := newEbaySearchScraper(f, "https://example.com/sch?q={query}&p={page}", DefaultSelectors())

	page, err := s.FetchPage(context.Background(), "3080 evga ftw3", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Number != 2 {
		t.Fatalf("Number got %d, want 2", page.Number)
	}
	if len(f.gotURLs) != 1 || f.gotURLs[0] != "https://example.com/sch?q=3080+evga+ftw3&p=2" {
		t.Fatalf("fetched URLs got %v", f.gotURLs)
	}
}

func TestEbaySearchScraper_FetchPage_wrapsFetchError(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{err: &StatusError{Code: http.StatusServiceUnavailable}}
	s := newEbaySearchScraper(f, "", DefaultSelectors())

	_, err := s.FetchPage(context.Background(), "q", 3)
	if !errors.Is(err, repository.ErrFetchFailure) {
		t.Fatalf("got error %v, want %v", err, repository.ErrFetchFailure)
	}

	var fe *repository.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *repository.FetchError, got %T", err)
	}
	if fe.Page != 3 || fe.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("FetchError got page %d status %d, want 3 503", fe.Page, fe.StatusCode)
	}
}

func TestBuildPageURL(t *testing.T) {
	t.Parallel()

	got := BuildPageURL(DefaultPageURLTemplate, "3080 evga ftw3", 4)
	want := "https://www.ebay.com/sch/i.html?_from=R40&_nkw=3080+evga+ftw3&_sacat=0&_pgn=4"
	if got != want {
		t.Fatalf("BuildPageURL got %q, want %q", got, want)
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent got %q, want %q", r.Header.Get("User-Agent"), "test-agent")
		}
		if r.URL.Query().Get("_pgn") == "9" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := newHTTPFetcher(srv.Client(), "test-agent", slog.Default())

	body, err := f.Fetch(context.Background(), srv.URL+"/sch?_pgn=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Fatalf("body got %q", body)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/sch?_pgn=9")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("got error %v, want status 404", err)
	}
}
