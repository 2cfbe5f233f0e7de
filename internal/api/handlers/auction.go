package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	"github.com/donaldgifford/donutsmp-bot/internal/format"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// Searcher runs auction-house searches.
type Searcher interface {
	Search(ctx context.Context, term string) (*domain.SearchResult, error)
	Lowest(ctx context.Context, term string) (*domain.Listing, error)
}

// AuctionHandler exposes the auction search over JSON.
type AuctionHandler struct {
	searcher Searcher
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(s Searcher) *AuctionHandler {
	return &AuctionHandler{searcher: s}
}

// ListingView is a listing as returned by the API.
type ListingView struct {
	ItemID string `json:"item_id" example:"minecraft:diamond_sword"`
	Name   string `json:"name" example:"Diamond Sword"`
	Seller string `json:"seller" example:"Steve"`
	Price  *int64 `json:"price,omitempty" example:"1500"`
}

// NewListingView converts a domain listing into its API shape.
func NewListingView(l *domain.Listing) ListingView {
	return ListingView{
		ItemID: l.ItemID,
		Name:   format.ItemName(l.ItemID),
		Seller: l.SellerName,
		Price:  l.Price,
	}
}

// SearchInput is the request body for the search endpoint.
type SearchInput struct {
	Body struct {
		Term string `json:"term" minLength:"1" doc:"Case-insensitive item name fragment" example:"diamond sword"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		SearchID  string        `json:"search_id" doc:"Identifier of this search"`
		Term      string        `json:"term" doc:"Normalized search term"`
		Total     int           `json:"total" doc:"Number of matching listings"`
		Truncated bool          `json:"truncated" doc:"Whether the scan stopped at the page cap"`
		CreatedAt time.Time     `json:"created_at"`
		Listings  []ListingView `json:"listings" doc:"Matches sorted by price ascending"`
	}
}

// Search scans the auction house for listings matching the term.
func (h *AuctionHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	res, err := h.searcher.Search(ctx, input.Body.Term)
	if err != nil {
		return nil, searchError(err)
	}

	out := &SearchOutput{}
	out.Body.SearchID = res.ID
	out.Body.Term = res.Term
	out.Body.Total = res.Total()
	out.Body.Truncated = res.Truncated
	out.Body.CreatedAt = res.CreatedAt
	out.Body.Listings = make([]ListingView, len(res.Listings))
	for i := range res.Listings {
		out.Body.Listings[i] = NewListingView(&res.Listings[i])
	}
	return out, nil
}

// PriceInput holds the query parameters for the price endpoint.
type PriceInput struct {
	Term string `query:"term" required:"true" minLength:"1" doc:"Case-insensitive item name fragment" example:"elytra"`
}

// PriceOutput is the response body for the price endpoint.
type PriceOutput struct {
	Body struct {
		Term    string      `json:"term"`
		Listing ListingView `json:"listing" doc:"Cheapest matching listing"`
	}
}

// Price finds the cheapest listing matching the term across every page.
func (h *AuctionHandler) Price(ctx context.Context, input *PriceInput) (*PriceOutput, error) {
	lowest, err := h.searcher.Lowest(ctx, input.Term)
	if err != nil {
		return nil, searchError(err)
	}
	if lowest == nil {
		return nil, huma.Error404NotFound("no listings match " + input.Term)
	}

	out := &PriceOutput{}
	out.Body.Term = input.Term
	out.Body.Listing = NewListingView(lowest)
	return out, nil
}

func searchError(err error) error {
	if errors.Is(err, auction.ErrEmptyTerm) {
		return huma.Error422UnprocessableEntity("term must contain a non-space character")
	}
	return huma.Error503ServiceUnavailable("search aborted: " + err.Error())
}

// RegisterAuctionRoutes registers auction endpoints with the Huma API.
func RegisterAuctionRoutes(api huma.API, h *AuctionHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-auctions",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search auction listings",
		Description: "Scans the auction house and returns every listing whose item name contains the term, cheapest first.",
		Tags:        []string{"auctions"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "lowest-price",
		Method:      http.MethodGet,
		Path:        "/api/v1/price",
		Summary:     "Find the lowest price",
		Description: "Scans every auction page and returns the single cheapest matching listing.",
		Tags:        []string{"auctions"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Price)
}
