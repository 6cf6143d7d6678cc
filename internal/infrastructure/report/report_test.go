package report

import (
	"time"

	"jo3qma.com/ebay_listings/internal/domain/model"
)

// sampleReport はランキング済みの2件を持つレポートを返します
func sampleReport() *model.Report {
	return &model.Report{
		RunID: "run-1",
		Query: "3080 evga ftw3",
		Listings: []model.Listing{
			model.NewListing("EVGA RTX 3080, FTW3", "https://www.ebay.com/itm/1", model.Cents(1500), model.Cents(66500), model.PriceOf(model.Cents(81500))),
			model.NewListing("EVGA RTX 3080 Ultra", "https://www.ebay.com/itm/2", model.Cents(0), model.Cents(70000), model.NoPrice()),
		},
		PagesFetched: 2,
		MaxPage:      2,
		GeneratedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
