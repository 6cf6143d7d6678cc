package repository

import (
	"context"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

// ReportSink はランキング済みレポートの出力先を抽象化します
type ReportSink interface {
	Emit(ctx context.Context, report *model.Report) error
}
