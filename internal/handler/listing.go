package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"jo3qma.com/ebay_listings/internal/domain/model"
	"jo3qma.com/ebay_listings/internal/usecase"
)

// SearchListingsProcedure は検索RPCのプロシージャ名です
const SearchListingsProcedure = "/listings.v1.ListingService/SearchListings"

// SearchListingsRequest は検索RPCのリクエストです
// MaxPages が 0 またはサーバーの設定値より大きい場合は設定値を使います
type SearchListingsRequest struct {
	Query    string `json:"query"`
	MaxPages int    `json:"max_pages,omitempty"`
}

// ListingMessage はランキング1件分のレスポンスです
// 価格は小数点以下2桁の文字列で、即決価格がない場合は "N/A" になります
type ListingMessage struct {
	Rank         int    `json:"rank"`
	Title        string `json:"title"`
	CurrentPrice string `json:"current_price"`
	BuyNowPrice  string `json:"buy_now_price"`
	ItemURL      string `json:"item_url"`
}

// SearchListingsResponse は検索RPCのレスポンスです
type SearchListingsResponse struct {
	RunID        string           `json:"run_id"`
	Query        string           `json:"query"`
	Listings     []ListingMessage `json:"listings"`
	PagesFetched int              `json:"pages_fetched"`
	FailedPages  []int            `json:"failed_pages,omitempty"`
	SkippedRows  int              `json:"skipped_rows"`
	MaxPage      int              `json:"max_page"`
}

type listingCollector interface {
	Collect(ctx context.Context, req usecase.CollectRequest) (*model.Report, error)
}

// ListingHandler はConnectのハンドラー実装です
// プロトコル層とドメイン層（usecase）を橋渡しします
type ListingHandler struct {
	uc              listingCollector
	defaultMaxPages int
	logger          *slog.Logger
}

// NewListingHandler は新しいListingHandlerインスタンスを作成します
func NewListingHandler(uc listingCollector, defaultMaxPages int, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:              uc,
		defaultMaxPages: defaultMaxPages,
		logger:          logger.With("component", "listing_handler"),
	}
}

// NewListingServiceHandler はConnectのパスとHTTPハンドラーを返します
func NewListingServiceHandler(h *ListingHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	return SearchListingsProcedure, connect.NewUnaryHandler(SearchListingsProcedure, h.SearchListings, opts...)
}

// NewListingServiceClient は検索RPCのクライアントを作成します
func NewListingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *connect.Client[SearchListingsRequest, SearchListingsResponse] {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return connect.NewClient[SearchListingsRequest, SearchListingsResponse](httpClient, baseURL+SearchListingsProcedure, opts...)
}

// SearchListings は検索結果を収集してランキング順に返すRPCハンドラーです
func (h *ListingHandler) SearchListings(
	ctx context.Context,
	req *connect.Request[SearchListingsRequest],
) (*connect.Response[SearchListingsResponse], error) {
	// 設定値が上限。リクエストで増やすことはできない
	maxPages := req.Msg.MaxPages
	if maxPages == 0 || maxPages > h.defaultMaxPages {
		maxPages = h.defaultMaxPages
	}

	report, err := h.uc.Collect(ctx, usecase.CollectRequest{Query: req.Msg.Query, MaxPages: maxPages})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRequest) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		if report == nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		// レポート自体は完成しているので、出力先の失敗はログに残して結果を返す
		h.logger.Warn("report emitted with errors", "run_id", report.RunID, "error", err)
	}

	return connect.NewResponse(toSearchListingsResponse(report)), nil
}

func toSearchListingsResponse(report *model.Report) *SearchListingsResponse {
	resp := &SearchListingsResponse{
		RunID:        report.RunID,
		Query:        report.Query,
		Listings:     make([]ListingMessage, 0, len(report.Listings)),
		PagesFetched: report.PagesFetched,
		FailedPages:  report.FailedPages,
		SkippedRows:  report.SkippedRows,
		MaxPage:      report.MaxPage,
	}
	for _, r := range report.Records() {
		resp.Listings = append(resp.Listings, ListingMessage{
			Rank:         r.Rank,
			Title:        r.Title,
			CurrentPrice: r.CurrentPrice,
			BuyNowPrice:  r.BuyNowPrice,
			ItemURL:      r.ItemURL,
		})
	}
	return resp
}
