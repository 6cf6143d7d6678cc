package report

import (
	"context"
	"errors"

	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/domain/repository"
)

type multiSink []repository.ReportSink

// NewMultiSink は複数の出力先へ順に書き出します
// 途中で失敗しても残りの出力先への書き出しは続け、エラーはまとめて返します
func NewMultiSink(sinks ...repository.ReportSink) repository.ReportSink {
	return multiSink(sinks)
}

func (m multiSink) Emit(ctx context.Context, report *model.Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
