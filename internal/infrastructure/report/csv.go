package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

var csvHeader = []string{"rank", "title", "current_price", "buy_now_price", "item_url"}

type csvSink struct {
	path string
}

// NewCSVSink は指定パスへCSVとして書き出す出力先を作成します
// 既存のファイルは上書きされます
func NewCSVSink(path string) repository.ReportSink {
	return &csvSink{path: path}
}

func (s *csvSink) Emit(ctx context.Context, report *model.Report) (err error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close csv file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range report.Records() {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{strconv.Itoa(r.Rank), r.Title, r.CurrentPrice, r.BuyNowPrice, r.ItemURL}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", r.Rank, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
