package model

import (
	"fmt"
)

// Money は金額を固定小数点（単位：セント）で表します
// 浮動小数点の丸め誤差を避けるため、価格の比較・加算はすべてこの型で行います
type Money int64

// Cents はセント単位の金額から Money を作成します
func Cents(c int64) Money {
	return Money(c)
}

// Cents はセント単位の整数値を返します
func (m Money) Cents() int64 {
	return int64(m)
}

// Add は2つの金額の和を返します
func (m Money) Add(other Money) Money {
	return m + other
}

// Float64 はドル単位の近似値を返します（表示・外部出力用）
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String は小数点以下2桁の文字列（例: "12.34"）を返します
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// NotApplicable は即決価格が存在しない場合の表示文字列です
const NotApplicable = "N/A"

// OptionalPrice は「金額あり」または「金額なし」のどちらかを表すタグ付き値です
// 即決価格がないことを 0 で代用せず、明示的な不在として扱います
type OptionalPrice struct {
	amount  Money
	present bool
}

// PriceOf は金額ありの OptionalPrice を作成します
func PriceOf(m Money) OptionalPrice {
	return OptionalPrice{amount: m, present: true}
}

// NoPrice は金額なしの OptionalPrice を返します
func NoPrice() OptionalPrice {
	return OptionalPrice{}
}

// Get は金額と、金額が存在するかどうかを返します
func (p OptionalPrice) Get() (Money, bool) {
	return p.amount, p.present
}

// IsPresent は金額が存在する場合に true を返します
func (p OptionalPrice) IsPresent() bool {
	return p.present
}

// String は金額がある場合は "12.34"、ない場合は "N/A" を返します
func (p OptionalPrice) String() string {
	if !p.present {
		return NotApplicable
	}
	return p.amount.String()
}
