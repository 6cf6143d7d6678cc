package repository

import (
	"errors"
	"fmt"
)

// ErrFetchFailure はページ取得の失敗（通信エラーまたは非成功ステータス）を表します
var ErrFetchFailure = errors.New("fetch failure")

// FetchError は1ページ分の取得失敗の詳細です
type FetchError struct {
	Page       int
	URL        string
	StatusCode int // 通信自体に失敗した場合は0
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch page %d: status %d", e.Page, e.StatusCode)
	}
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

// Unwrap は errors.Is(err, ErrFetchFailure) と元のエラーの両方を満たします
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailure}
	}
	return []error{ErrFetchFailure, e.Err}
}
