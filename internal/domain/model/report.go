package model

import "time"

// Report は1回の収集実行の結果です
// Listings はランキング順に並べ替え済みです
type Report struct {
	RunID        string
	Query        string
	Listings     []Listing
	PagesFetched int
	FailedPages  []int // 取得に失敗したページ番号（昇順）
	SkippedRows  int   // 価格を解釈できずスキップした行数
	MaxPage      int   // ページ送りから判明した最終ページ
	GeneratedAt  time.Time
}

// ReportRecord はレポート出力先へ渡す1件分の整形済みレコードです
type ReportRecord struct {
	Rank         int
	Title        string
	CurrentPrice string // 小数点以下2桁
	BuyNowPrice  string // 小数点以下2桁、または "N/A"
	ItemURL      string
}

// Records は Listings を出力用レコードへ変換します
func (r *Report) Records() []ReportRecord {
	records := make([]ReportRecord, 0, len(r.Listings))
	for i, l := range r.Listings {
		records = append(records, ReportRecord{
			Rank:         i + 1,
			Title:        l.Title(),
			CurrentPrice: l.CurrentPrice().String(),
			BuyNowPrice:  l.BuyNowPrice().String(),
			ItemURL:      l.ItemURL(),
		})
	}
	return records
}

// Partial は一部のページ取得に失敗した場合に true を返します
func (r *Report) Partial() bool {
	return len(r.FailedPages) > 0
}
