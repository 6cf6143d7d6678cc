package listing

import (
	"cmp"
	"slices"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

// Compare は2つの出品の順序を返します（a が先なら負、同順位なら0、後なら正）
//
// 即決価格がある出品は、ない出品より常に前に並びます。
// 両方にある場合は即決価格の昇順、両方にない場合は現在価格の昇順です。
func Compare(a, b model.Listing) int {
	aBuy, aOK := a.BuyNowPrice().Get()
	bBuy, bOK := b.BuyNowPrice().Get()

	switch {
	case !aOK && !bOK:
		return cmp.Compare(a.CurrentPrice(), b.CurrentPrice())
	case !aOK:
		return 1
	case !bOK:
		return -1
	default:
		return cmp.Compare(aBuy, bBuy)
	}
}

// Rank は listings を Compare の順に並べ替えます
func Rank(listings []model.Listing) {
	slices.SortFunc(listings, Compare)
}
