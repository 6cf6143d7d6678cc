package model

// RawListingFields は検索結果ページの1行から抽出した未加工の文字列群です
// マークアップ抽出直後に正規化へ渡され、そのまま破棄されます
type RawListingFields struct {
	Title           string
	ItemURL         string
	PriceText       string // 例: "$12.34" または "$12.34$56.78"
	ShippingText    string // 例: "Free shipping" または "+$3.99 shipping"
	ListingTypeText string // 例: "3 bids" や "Buy It Now"
}

// Listing は正規化済みの出品情報のドメインモデルです
// 価格はすべて生成時に一度だけ計算され、以後変更されません
type Listing struct {
	title         string
	itemURL       string
	shippingPrice Money
	currentPrice  Money
	buyNowPrice   OptionalPrice
}

// NewListing は計算済みの値から Listing を作成します
// 価格の導出は listing パッケージの Normalize が担当します
func NewListing(title, itemURL string, shipping, current Money, buyNow OptionalPrice) Listing {
	return Listing{
		title:         title,
		itemURL:       itemURL,
		shippingPrice: shipping,
		currentPrice:  current,
		buyNowPrice:   buyNow,
	}
}

// Title は "New Listing" バッジを除いたタイトルを返します
func (l Listing) Title() string { return l.title }

// ItemURL は商品ページのURLを返します
func (l Listing) ItemURL() string { return l.itemURL }

// ShippingPrice は送料を返します（送料無料の場合は0）
func (l Listing) ShippingPrice() Money { return l.shippingPrice }

// CurrentPrice は送料込みの現在価格を返します
func (l Listing) CurrentPrice() Money { return l.currentPrice }

// BuyNowPrice は送料込みの即決価格を返します。オークションのみの出品では不在です
func (l Listing) BuyNowPrice() OptionalPrice { return l.buyNowPrice }
