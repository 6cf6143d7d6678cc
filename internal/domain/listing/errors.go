// Package listing は検索結果の行データを正規化し、比較可能な出品情報へ変換します。
// 価格文字列の解釈、送料の解釈、出品形式の判定、ランキング、ページ数の解決を含みます。
package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPrice は価格文字列が想定した形式（"$A" または "$A$B"）でないことを表します
	ErrMalformedPrice = errors.New("malformed price")
	// ErrInvalidInput は送料などの入力文字列を数値として扱えないことを表します
	ErrInvalidInput = errors.New("invalid input")
)

// RowError は正規化できずにスキップされた行の情報です
type RowError struct {
	Index int
	Title string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func malformedPrice(text, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedPrice, text, reason)
}
