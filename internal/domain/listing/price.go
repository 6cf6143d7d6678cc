package listing

import (
	"regexp"
	"strconv"
	"strings"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

const currencySymbol = "$"

// 区切り文字を除去した後の先頭の数値部分（"12.99 to " のような範囲表記も先頭だけ使う）
var leadingAmount = regexp.MustCompile(`^\s*([0-9]+)(?:\.([0-9]*))?`)

// ParsePrice は "$12.34" または "$12.34$56.78" 形式の価格文字列を解釈します
// 2つ目の通貨記号以降があれば即決価格として secondary に入ります
func ParsePrice(text string) (primary model.Money, secondary model.OptionalPrice, err error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, currencySymbol) {
		return 0, model.NoPrice(), malformedPrice(text, "missing currency symbol")
	}

	rest := text[len(currencySymbol):]
	first, second, hasSecond := strings.Cut(rest, currencySymbol)

	primary, err = parseAmount(first)
	if err != nil {
		return 0, model.NoPrice(), malformedPrice(text, err.Error())
	}
	if !hasSecond {
		return primary, model.NoPrice(), nil
	}

	buyNow, err := parseAmount(second)
	if err != nil {
		return 0, model.NoPrice(), malformedPrice(text, err.Error())
	}
	return primary, model.PriceOf(buyNow), nil
}

// parseAmount は "1,234.56" のような文字列をセント単位に変換します
// 小数点以下3桁目は四捨五入します
func parseAmount(s string) (model.Money, error) {
	s = strings.ReplaceAll(s, ",", "")
	m := leadingAmount.FindStringSubmatch(s)
	if m == nil {
		return 0, errNoDigits
	}

	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || whole > maxWholeUnits {
		return 0, errOutOfRange
	}

	frac := m[2]
	var cents int64
	switch {
	case len(frac) == 0:
	case len(frac) == 1:
		cents = int64(frac[0]-'0') * 10
	default:
		cents = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}
	return model.Cents(whole*100 + cents), nil
}

// 価格・送料それぞれの上限です。2つを足しても int64 を超えません
const (
	maxWholeUnits = 1<<62/100 - 1
	maxCents      = maxWholeUnits*100 + 99
)

type amountError string

func (e amountError) Error() string { return string(e) }

const (
	errNoDigits   amountError = "no parseable digits"
	errOutOfRange amountError = "amount out of range"
)
