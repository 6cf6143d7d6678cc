package listing

import (
	"strings"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

// PlaceholderTitle は検索結果に自動挿入される広告行のタイトルです
const PlaceholderTitle = "Shop on eBay"

// IsPlaceholder は行が出品ではない挿入行の場合に true を返します
func IsPlaceholder(row model.RawListingFields) bool {
	return strings.TrimSpace(row.Title) == PlaceholderTitle
}

// ExtractPage は1ページ分の行データを正規化します
// 挿入行は除外し、価格を解釈できない行は RowError として返してスキップします
func ExtractPage(rows []model.RawListingFields) ([]model.Listing, []*RowError) {
	listings := make([]model.Listing, 0, len(rows))
	var skipped []*RowError

	for i, row := range rows {
		if IsPlaceholder(row) {
			continue
		}
		l, err := Normalize(row)
		if err != nil {
			skipped = append(skipped, &RowError{Index: i, Title: row.Title, Err: err})
			continue
		}
		listings = append(listings, l)
	}

	return listings, skipped
}
