package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/donutsmp-bot/internal/api/handlers"
	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	donutMocks "github.com/donaldgifford/donutsmp-bot/internal/donut/mocks"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

func listing(itemID, seller string, price int64) domain.Listing {
	return domain.Listing{ItemID: itemID, SellerName: seller, Price: &price}
}

func newAggregator(m *donutMocks.MockAPI) *auction.Aggregator {
	return auction.NewAggregator(m,
		auction.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		auction.WithIDFunc(func() string { return "search-1" }),
	)
}

func TestAuctionHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		setupMock  func(*donutMocks.MockAPI)
		wantStatus int
		wantBody   string
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "returns sorted matches",
			body: map[string]any{"term": "Diamond Sword"},
			setupMock: func(m *donutMocks.MockAPI) {
				m.EXPECT().AuctionPage(mock.Anything, 1).Return([]domain.Listing{
					listing("minecraft:diamond_sword", "Steve", 500),
					listing("minecraft:dirt", "Alex", 1),
					listing("minecraft:diamond_sword", "Alex", 100),
				}, nil).Once()
				m.EXPECT().AuctionPage(mock.Anything, 2).Return(nil, donut.ErrNotFound).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				t.Helper()
				var out struct {
					SearchID string                 `json:"search_id"`
					Term     string                 `json:"term"`
					Total    int                    `json:"total"`
					Listings []handlers.ListingView `json:"listings"`
				}
				require.NoError(t, json.Unmarshal(body, &out))
				assert.Equal(t, "search-1", out.SearchID)
				assert.Equal(t, "diamond sword", out.Term)
				assert.Equal(t, 2, out.Total)
				require.Len(t, out.Listings, 2)
				assert.Equal(t, "Alex", out.Listings[0].Seller)
				assert.Equal(t, "Diamond Sword", out.Listings[0].Name)
				assert.Equal(t, int64(100), *out.Listings[0].Price)
			},
		},
		{
			name: "no matches is an empty list",
			body: map[string]any{"term": "elytra"},
			setupMock: func(m *donutMocks.MockAPI) {
				m.EXPECT().AuctionPage(mock.Anything, 1).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":0`,
		},
		{
			name:       "missing term returns 422",
			body:       map[string]any{},
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected required property term to be present`,
		},
		{
			name:       "empty term returns 422",
			body:       map[string]any{"term": ""},
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected length >= 1`,
		},
		{
			name:       "blank term returns 422 without scanning",
			body:       map[string]any{"term": "   "},
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "non-space character",
		},
		{
			name:       "invalid JSON returns 400",
			body:       strings.NewReader(`not json`),
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := donutMocks.NewMockAPI(t)
			tt.setupMock(m)

			_, api := humatest.New(t)
			handlers.RegisterAuctionRoutes(api, handlers.NewAuctionHandler(newAggregator(m)))

			resp := api.Post("/api/v1/search", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
			if tt.check != nil {
				tt.check(t, resp.Body.Bytes())
			}
		})
	}
}

func TestAuctionHandler_Price(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*donutMocks.MockAPI)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "returns cheapest listing",
			query: "?term=elytra",
			setupMock: func(m *donutMocks.MockAPI) {
				m.EXPECT().AuctionPage(mock.Anything, 1).
					Return([]domain.Listing{listing("minecraft:elytra", "Steve", 5000)}, nil).Once()
				m.EXPECT().AuctionPage(mock.Anything, 2).
					Return([]domain.Listing{listing("minecraft:elytra", "Alex", 4200)}, nil).Once()
				m.EXPECT().AuctionPage(mock.Anything, 3).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"seller":"Alex"`,
		},
		{
			name:  "no match returns 404",
			query: "?term=elytra",
			setupMock: func(m *donutMocks.MockAPI) {
				m.EXPECT().AuctionPage(mock.Anything, 1).Return(nil, nil).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "no listings match elytra",
		},
		{
			name:       "missing term returns 422",
			query:      "",
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "blank term returns 422 without scanning",
			query:      "?term=%20%20",
			setupMock:  func(_ *donutMocks.MockAPI) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "non-space character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := donutMocks.NewMockAPI(t)
			tt.setupMock(m)

			_, api := humatest.New(t)
			handlers.RegisterAuctionRoutes(api, handlers.NewAuctionHandler(newAggregator(m)))

			resp := api.Get("/api/v1/price" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuctionHandler_SearchCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	m := donutMocks.NewMockAPI(t)
	m.EXPECT().AuctionPage(mock.Anything, 1).
		RunAndReturn(func(context.Context, int) ([]domain.Listing, error) {
			cancel()
			return nil, context.Canceled
		}).Once()

	h := handlers.NewAuctionHandler(newAggregator(m))
	in := &handlers.SearchInput{}
	in.Body.Term = "elytra"

	_, err := h.Search(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search aborted")
}
