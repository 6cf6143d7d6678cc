package listing

import (
	"fmt"
	"strconv"
	"strings"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

const freeShipping = "free shipping"

// ParseShipping は送料の文字列を金額に変換します
// "Free shipping"（大文字小文字は区別しない）は0、それ以外は数字だけを取り出して
// セント単位として解釈します。数字が1つもない場合も0です
func ParseShipping(text string) (model.Money, error) {
	if strings.EqualFold(strings.TrimSpace(text), freeShipping) {
		return 0, nil
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, nil
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: shipping %q: %v", ErrInvalidInput, text, err)
	}
	if cents > maxCents {
		return 0, fmt.Errorf("%w: shipping %q: amount out of range", ErrInvalidInput, text)
	}
	return model.Cents(cents), nil
}
