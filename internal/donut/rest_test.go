package donut_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...donut.Option) *donut.RESTClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]donut.Option{
		donut.WithBaseURL(srv.URL),
		donut.WithHTTPClient(srv.Client()),
	}, opts...)
	return donut.NewRESTClient("test-key", opts...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestRESTClient_AuctionPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    error
		wantItems  int
		checkFirst func(t *testing.T, l domain.Listing)
	}{
		{
			name: "successful page with listings",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				assert.Equal(t, "/auction/list/3", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				writeJSON(w, http.StatusOK, `{
					"status": 200,
					"result": [
						{"item": {"id": "minecraft:diamond_sword", "count": 1}, "seller": {"name": "Steve"}, "price": 1500},
						{"item": {"id": "minecraft:elytra"}, "seller": {"name": "Alex"}, "price": "2500"}
					]
				}`)
			},
			wantItems: 2,
			checkFirst: func(t *testing.T, l domain.Listing) {
				t.Helper()
				assert.Equal(t, "minecraft:diamond_sword", l.ItemID)
				assert.Equal(t, "Steve", l.SellerName)
				require.NotNil(t, l.Price)
				assert.Equal(t, int64(1500), *l.Price)
				assert.Contains(t, l.Raw, "item")
			},
		},
		{
			name: "listing without price keeps nil price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"status": 200, "result": [
					{"item": {"id": "minecraft:dirt"}, "seller": {"name": "Steve"}}
				]}`)
			},
			wantItems: 1,
			checkFirst: func(t *testing.T, l domain.Listing) {
				t.Helper()
				assert.Nil(t, l.Price)
			},
		},
		{
			name: "empty result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"status": 200, "result": []}`)
			},
			wantItems: 0,
		},
		{
			name: "null result",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"status": 200, "result": null}`)
			},
			wantItems: 0,
		},
		{
			name: "404 is not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusNotFound, `{"status": 404, "message": "page not found"}`)
			},
			wantErr: donut.ErrNotFound,
		},
		{
			name: "500 body is still parsed",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusInternalServerError, `{"status": 500, "result": [
					{"item": {"id": "minecraft:stone"}, "seller": {"name": "Notch"}, "price": 1}
				]}`)
			},
			wantItems: 1,
		},
		{
			name: "401 is a remote error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"status": 401, "message": "bad key"}`)
			},
			wantErr: donut.ErrRemote,
		},
		{
			name: "invalid JSON is a remote error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, "not valid json")
			},
			wantErr: donut.ErrRemote,
		},
		{
			name: "result of wrong shape is a remote error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"status": 200, "result": {"oops": true}}`)
			},
			wantErr: donut.ErrRemote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, tt.handler)
			listings, err := c.AuctionPage(context.Background(), 3)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, listings, tt.wantItems)
			if tt.checkFirst != nil {
				tt.checkFirst(t, listings[0])
			}
		})
	}
}

func TestRESTClient_RemoteErrorDetails(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, `{"status": 429, "message": "slow down"}`)
	})

	_, err := c.AuctionPage(context.Background(), 1)
	require.Error(t, err)

	var rerr *donut.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusTooManyRequests, rerr.StatusCode)
	assert.Equal(t, "/auction/list/1", rerr.Endpoint)
	assert.Contains(t, rerr.Error(), "status 429")
}

func TestRESTClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := donut.NewRESTClient("k", donut.WithBaseURL(url), donut.WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.Stats(context.Background(), "Steve")
	require.Error(t, err)
	assert.ErrorIs(t, err, donut.ErrRemote)
	assert.NotErrorIs(t, err, donut.ErrNotFound)
}

func TestRESTClient_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    *domain.OnlineStatus
		wantErr error
	}{
		{
			name:   "online player",
			status: http.StatusOK,
			body:   `{"status": 200, "result": {"location": "spawn", "rank": "VIP"}}`,
			want:   &domain.OnlineStatus{Online: true, Location: "spawn", Rank: "VIP"},
		},
		{
			name:   "offline player reported as 500",
			status: http.StatusInternalServerError,
			body:   `{"status": 500, "message": "This user is not currently online."}`,
			want:   &domain.OnlineStatus{Online: false},
		},
		{
			name:    "unknown player",
			status:  http.StatusNotFound,
			body:    `{"status": 404, "message": "not found"}`,
			wantErr: donut.ErrNotFound,
		},
		{
			name:    "unrecognised envelope",
			status:  http.StatusInternalServerError,
			body:    `{"status": 500, "message": "database exploded"}`,
			wantErr: donut.ErrUnexpectedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/lookup/Steve", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			got, err := c.Lookup(context.Background(), "Steve")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRESTClient_Stats(t *testing.T) {
	t.Parallel()

	t.Run("decodes mixed number encodings", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/stats/Steve", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"status": 200, "result": {
				"money": "1234567.89", "kills": 12, "deaths": "3", "playtime": 93600000
			}}`)
		})

		got, err := c.Stats(context.Background(), "Steve")
		require.NoError(t, err)
		assert.InDelta(t, 1234567.89, got.Money, 0.001)
		assert.Equal(t, int64(12), got.Kills)
		assert.Equal(t, int64(3), got.Deaths)
		assert.Equal(t, 26*time.Hour, got.Playtime)
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"status": 200, "result": {}}`)
		})

		_, err := c.Stats(context.Background(), "Steve")
		assert.ErrorIs(t, err, donut.ErrUnexpectedPayload)
	})
}

func TestRESTClient_TransactionsPage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auction/transactions/2", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status": 200, "result": [
			{"item": {"id": "minecraft:totem_of_undying"}, "seller": "Steve", "buyer": "Alex", "price": 90000}
		]}`)
	})

	sales, err := c.TransactionsPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, domain.Sale{
		ItemID: "minecraft:totem_of_undying",
		Seller: "Steve",
		Buyer:  "Alex",
		Price:  90000,
	}, sales[0])
}

func TestRESTClient_Leaderboard(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaderboards/kills/1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status": 200, "result": [
			{"username": "Steve", "value": "1500"},
			{"username": "Alex", "value": 900.5}
		]}`)
	})

	rows, err := c.Leaderboard(context.Background(), domain.LeaderboardKills, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{Username: "Steve", Value: 1500},
		{Username: "Alex", Value: 900.5},
	}, rows)
}

func TestRESTClient_RecordsSpans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{}`)
	}, donut.WithTracerProvider(tp))

	_, err := c.AuctionPage(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, donut.ErrRemote))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "donut.auction_list", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
