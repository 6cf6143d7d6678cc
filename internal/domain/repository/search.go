package repository

import (
	"context"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

// SearchPageRepository は検索結果ページの取得方法を抽象化します。
// 実装がHTTPなのか、クローラーなのかはドメイン層は知りません。
type SearchPageRepository interface {
	// FetchPage は検索ワードとページ番号（1始まり）から1ページ分の抽出結果を取得します
	// 取得に失敗した場合は *FetchError を返します
	FetchPage(ctx context.Context, query string, page int) (*model.SearchPage, error)
}
