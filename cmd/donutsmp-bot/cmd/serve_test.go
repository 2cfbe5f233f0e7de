package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/donutsmp-bot/internal/config"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

type stubReady struct{ err error }

func (s stubReady) Ready(context.Context) error { return s.err }

type stubSearcher struct{}

func (stubSearcher) Search(_ context.Context, term string) (*domain.SearchResult, error) {
	price := int64(250)
	return &domain.SearchResult{
		ID:   "s1",
		Term: term,
		Listings: []domain.Listing{
			{ItemID: "minecraft:elytra", SellerName: "Steve", Price: &price},
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (stubSearcher) Lowest(context.Context, string) (*domain.Listing, error) {
	return nil, nil
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}
}

func TestNewServer_Routes(t *testing.T) {
	t.Parallel()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		ready      error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthz",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `"ok"`,
		},
		{
			name:       "readyz while polling",
			method:     http.MethodGet,
			path:       "/readyz",
			wantStatus: http.StatusOK,
			wantBody:   `"ready"`,
		},
		{
			name:       "readyz while stopped",
			method:     http.MethodGet,
			path:       "/readyz",
			ready:      errors.New("stopped"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"unavailable"`,
		},
		{
			name:       "metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
			wantBody:   "donutbot_",
		},
		{
			name:       "openapi document",
			method:     http.MethodGet,
			path:       "/openapi.json",
			wantStatus: http.StatusOK,
			wantBody:   "search-auctions",
		},
		{
			name:       "swagger ui",
			method:     http.MethodGet,
			path:       "/swagger/index.html",
			wantStatus: http.StatusOK,
			wantBody:   "swagger-ui",
		},
		{
			name:       "search",
			method:     http.MethodPost,
			path:       "/api/v1/search",
			body:       `{"term":"elytra"}`,
			wantStatus: http.StatusOK,
			wantBody:   `"seller":"Steve"`,
		},
		{
			name:       "price with no match",
			method:     http.MethodGet,
			path:       "/api/v1/price?term=elytra",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newServer(testServerConfig(), quiet, stubReady{err: tt.ready}, stubSearcher{})

			var body io.Reader = http.NoBody
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	t.Parallel()

	cfg := &config.ServerConfig{ReadTimeout: 3 * time.Second, WriteTimeout: 7 * time.Second}
	e := newServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, stubSearcher{})

	assert.Equal(t, 3*time.Second, e.Server.ReadTimeout)
	assert.Equal(t, 7*time.Second, e.Server.WriteTimeout)
}
