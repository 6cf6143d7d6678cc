package ebay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

// Selectors は検索結果ページから値を取り出すためのCSSセレクターです
type Selectors struct {
	PaginationLinks string
	Item            string
	Title           string
	Link            string
	Price           string
	Shipping        string
	ListingType     string
}

// DefaultSelectors はeBayの検索結果ページのセレクターを返します
func DefaultSelectors() Selectors {
	return Selectors{
		PaginationLinks: ".pagination__items li > a",
		Item:            ".s-item__wrapper",
		Title:           ".s-item__title",
		Link:            ".s-item__link",
		Price:           ".s-item__price",
		Shipping:        ".s-item__logisticsCost",
		ListingType:     ".s-item__detail--primary",
	}
}

// ebaySearchScraper は検索結果ページのHTMLをスクレイピングして行データを取得する実装です
// 外部サイトの不安定な構造をドメインの RawListingFields に変換する責務を持ちます
type ebaySearchScraper struct {
	fetcher         Fetcher
	pageURLTemplate string
	selectors       Selectors
}

// NewEbaySearchScraper は新しい SearchPageRepository の実装を作成します
func NewEbaySearchScraper(fetcher Fetcher, pageURLTemplate string) repository.SearchPageRepository {
	return newEbaySearchScraper(fetcher, pageURLTemplate, DefaultSelectors())
}

func newEbaySearchScraper(fetcher Fetcher, pageURLTemplate string, selectors Selectors) *ebaySearchScraper {
	if pageURLTemplate == "" {
		pageURLTemplate = DefaultPageURLTemplate
	}
	return &ebaySearchScraper{
		fetcher:         fetcher,
		pageURLTemplate: pageURLTemplate,
		selectors:       selectors,
	}
}

// FetchPage は指定ページを取得し、行データとページ送りのラベルを抽出します
func (s *ebaySearchScraper) FetchPage(ctx context.Context, query string, page int) (*model.SearchPage, error) {
	url := BuildPageURL(s.pageURLTemplate, query, page)

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		fe := &repository.FetchError{Page: page, URL: url, Err: err}
		var se *StatusError
		if errors.As(err, &se) {
			fe.StatusCode = se.Code
		}
		return nil, fe
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &repository.FetchError{Page: page, URL: url, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	result := s.extractSearchPage(doc)
	result.Number = page
	return result, nil
}

// extractSearchPage はHTMLドキュメントから行データとページ送りのラベルを抽出します
// 一致する要素がない場合は空の結果を返します（最終ページ付近では正常な状態です）
func (s *ebaySearchScraper) extractSearchPage(doc *goquery.Document) *model.SearchPage {
	page := &model.SearchPage{}

	doc.Find(s.selectors.PaginationLinks).Each(func(i int, a *goquery.Selection) {
		page.PaginationLabels = append(page.PaginationLabels, strings.TrimSpace(a.Text()))
	})

	doc.Find(s.selectors.Item).Each(func(i int, item *goquery.Selection) {
		row := model.RawListingFields{
			Title:           strings.TrimSpace(item.Find(s.selectors.Title).Text()),
			PriceText:       strings.TrimSpace(item.Find(s.selectors.Price).Text()),
			ShippingText:    strings.TrimSpace(item.Find(s.selectors.Shipping).Text()),
			ListingTypeText: strings.TrimSpace(item.Find(s.selectors.ListingType).Text()),
		}
		if href, exists := item.Find(s.selectors.Link).Attr("href"); exists {
			row.ItemURL = href
		}
		page.Rows = append(page.Rows, row)
	})

	return page
}
