package listing

import (
	"strings"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

const newListingBadge = "New Listing"

// Normalize は抽出した行データから Listing を作成します
// 現在価格・即決価格はどちらも送料込みで、ここで一度だけ計算されます
func Normalize(raw model.RawListingFields) (model.Listing, error) {
	title := strings.TrimSpace(strings.Replace(raw.Title, newListingBadge, "", 1))

	shipping, err := ParseShipping(raw.ShippingText)
	if err != nil {
		return model.Listing{}, err
	}

	primary, secondary, err := ParsePrice(raw.PriceText)
	if err != nil {
		return model.Listing{}, err
	}

	current := primary.Add(shipping)

	var buyNow model.OptionalPrice
	if second, ok := secondary.Get(); ok {
		buyNow = model.PriceOf(second.Add(shipping))
	} else if IsAuction(raw.ListingTypeText) {
		buyNow = model.NoPrice()
	} else {
		// 固定価格のみの出品は唯一の価格がそのまま即決価格になる
		buyNow = model.PriceOf(current)
	}

	return model.NewListing(title, raw.ItemURL, shipping, current, buyNow), nil
}
