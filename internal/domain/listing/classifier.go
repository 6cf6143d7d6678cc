package listing

import "strings"

// auctionToken はオークション形式の出品に表示される文字列です（"0 bids" など）
const auctionToken = "bid"

// IsAuction は出品形式の文字列が入札形式を示す場合に true を返します
func IsAuction(listingType string) bool {
	return strings.Contains(listingType, auctionToken)
}
