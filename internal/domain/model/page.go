package model

// SearchPage は検索結果1ページ分の抽出結果を表します
type SearchPage struct {
	Number           int
	Rows             []RawListingFields
	PaginationLabels []string // ページ送りに表示されたページ番号（最後が最終ページ）
}
