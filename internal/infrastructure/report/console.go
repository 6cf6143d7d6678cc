// Package report はランキング済みレポートの出力先（コンソール・CSV・Redis Stream）を提供します
package report

import (
	"context"
	"fmt"
	"io"

	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

type consoleSink struct {
	w io.Writer
}

// NewConsoleSink はランキング順に1件ずつ書き出す出力先を作成します
func NewConsoleSink(w io.Writer) repository.ReportSink {
	return &consoleSink{w: w}
}

func (s *consoleSink) Emit(ctx context.Context, report *model.Report) error {
	for _, r := range report.Records() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeConsoleRecord(s.w, r); err != nil {
			return fmt.Errorf("failed to write listing %d: %w", r.Rank, err)
		}
	}
	return nil
}

func writeConsoleRecord(w io.Writer, r model.ReportRecord) error {
	buyNow := r.BuyNowPrice
	if buyNow != model.NotApplicable {
		buyNow = "$" + buyNow
	}
	_, err := fmt.Fprintf(w, "Title: %s\nCurrent Price: $%s\nBuy Now Price: %s\n%s\n\n",
		r.Title, r.CurrentPrice, buyNow, r.ItemURL)
	return err
}
