package donut

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/donutsmp-bot/internal/metrics"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

const (
	// DefaultBaseURL is the production DonutSMP API root.
	DefaultBaseURL = "https://api.donutsmp.net/v1"

	tracerName     = "github.com/donaldgifford/donutsmp-bot/internal/donut"
	notOnlineText  = "user is not currently online"
	maxLoggedBytes = 512
)

// Endpoint labels used for metrics and spans.
const (
	endpointLookup       = "lookup"
	endpointStats        = "stats"
	endpointAuctionList  = "auction_list"
	endpointTransactions = "auction_transactions"
	endpointLeaderboards = "leaderboards"
)

// RESTClient implements API over HTTP. A single RESTClient is built by the
// process entry point and shared by every consumer.
type RESTClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
	tracer  trace.Tracer
}

// Option configures the RESTClient.
type Option func(*RESTClient)

// WithBaseURL overrides the default API root.
func WithBaseURL(u string) Option {
	return func(c *RESTClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) {
		c.client = hc
	}
}

// WithLogger sets the logger used for remote errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *RESTClient) {
		c.log = l
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *RESTClient) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// NewRESTClient creates a new DonutSMP API client authenticated with apiKey.
func NewRESTClient(apiKey string, opts ...Option) *RESTClient {
	c := &RESTClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup reports whether username is online and, if so, where.
func (c *RESTClient) Lookup(ctx context.Context, username string) (*domain.OnlineStatus, error) {
	env, err := c.get(ctx, endpointLookup, "/lookup/"+url.PathEscape(username))
	if err != nil {
		return nil, err
	}

	if strings.Contains(env.Message, notOnlineText) {
		return &domain.OnlineStatus{Online: false}, nil
	}

	if env.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup status %d: %s", ErrUnexpectedPayload, env.Status, env.Message)
	}

	var res lookupResult
	if env.hasResult() {
		if err := json.Unmarshal(env.Result, &res); err != nil {
			return nil, fmt.Errorf("%w: parsing lookup result: %w", ErrRemote, err)
		}
	}

	return &domain.OnlineStatus{
		Online:   true,
		Location: res.Location,
		Rank:     res.Rank,
	}, nil
}

// Stats returns the headline statistics for username. An envelope with an
// empty result is reported as ErrUnexpectedPayload.
func (c *RESTClient) Stats(ctx context.Context, username string) (*domain.PlayerStats, error) {
	env, err := c.get(ctx, endpointStats, "/stats/"+url.PathEscape(username))
	if err != nil {
		return nil, err
	}

	if !env.hasResult() || string(env.Result) == "{}" {
		return nil, fmt.Errorf("%w: empty stats result", ErrUnexpectedPayload)
	}

	var res statsResult
	if err := json.Unmarshal(env.Result, &res); err != nil {
		return nil, fmt.Errorf("%w: parsing stats result: %w", ErrRemote, err)
	}

	return &domain.PlayerStats{
		Money:    float64(res.Money),
		Kills:    res.Kills.int64(),
		Deaths:   res.Deaths.int64(),
		Playtime: time.Duration(res.Playtime.int64()) * time.Millisecond,
	}, nil
}

// AuctionPage returns the listings on one page of the auction house. Pages
// are numbered from 1. An empty slice means the page exists but is empty.
func (c *RESTClient) AuctionPage(ctx context.Context, page int) ([]domain.Listing, error) {
	env, err := c.get(ctx, endpointAuctionList, "/auction/list/"+strconv.Itoa(page))
	if err != nil {
		return nil, err
	}
	if !env.hasResult() {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(env.Result, &raws); err != nil {
		return nil, fmt.Errorf("%w: parsing auction page %d: %w", ErrRemote, page, err)
	}

	listings := make([]domain.Listing, 0, len(raws))
	for _, raw := range raws {
		l, err := toListing(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing auction page %d: %w", ErrRemote, page, err)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// TransactionsPage returns one page of recent auction-house sales.
func (c *RESTClient) TransactionsPage(ctx context.Context, page int) ([]domain.Sale, error) {
	env, err := c.get(ctx, endpointTransactions, "/auction/transactions/"+strconv.Itoa(page))
	if err != nil {
		return nil, err
	}
	if !env.hasResult() {
		return nil, nil
	}

	var rows []transaction
	if err := json.Unmarshal(env.Result, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing transactions page %d: %w", ErrRemote, page, err)
	}

	sales := make([]domain.Sale, 0, len(rows))
	for i := range rows {
		sales = append(sales, domain.Sale{
			ItemID: rows[i].Item.ID,
			Seller: rows[i].Seller,
			Buyer:  rows[i].Buyer,
			Price:  rows[i].Price.int64(),
		})
	}
	return sales, nil
}

// Leaderboard returns one page of the given leaderboard.
func (c *RESTClient) Leaderboard(
	ctx context.Context,
	category domain.LeaderboardCategory,
	page int,
) ([]domain.LeaderboardEntry, error) {
	path := "/leaderboards/" + url.PathEscape(string(category)) + "/" + strconv.Itoa(page)
	env, err := c.get(ctx, endpointLeaderboards, path)
	if err != nil {
		return nil, err
	}
	if !env.hasResult() {
		return nil, nil
	}

	var rows []leaderboardRow
	if err := json.Unmarshal(env.Result, &rows); err != nil {
		return nil, fmt.Errorf("%w: parsing leaderboard page %d: %w", ErrRemote, page, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			Username: rows[i].Username,
			Value:    float64(rows[i].Value),
		})
	}
	return entries, nil
}

// get performs a GET request and classifies the response. 2xx and 500
// bodies are decoded as envelopes; 404 is ErrNotFound; everything else is
// a *RemoteError. Each call is attempted exactly once.
func (c *RESTClient) get(ctx context.Context, endpoint, path string) (*envelope, error) {
	ctx, span := c.tracer.Start(ctx, "donut."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("donut.path", path)),
	)
	defer span.End()

	start := time.Now()
	env, outcome, err := c.do(ctx, endpoint, path)
	metrics.RemoteRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.RemoteRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	span.SetAttributes(attribute.String("donut.outcome", outcome))
	if err != nil && outcome != outcomeNotFound {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	return env, err
}

const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeStatus    = "status_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

func (c *RESTClient) do(ctx context.Context, endpoint, path string) (*envelope, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, outcomeTransport, fmt.Errorf("%w: creating request: %w", ErrRemote, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("DonutSMP API call failed", "endpoint", endpoint, "path", path, "err", err)
		return nil, outcomeTransport, fmt.Errorf("%w: executing request: %w", ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("reading DonutSMP API response", "endpoint", endpoint, "path", path, "err", err)
		return nil, outcomeTransport, fmt.Errorf("%w: reading response body: %w", ErrRemote, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, outcomeNotFound, ErrNotFound
	case isDecodable(resp.StatusCode):
		// The API reports some ordinary conditions (e.g. an offline
		// player) as 500 with a normal envelope.
	default:
		rerr := &RemoteError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxLoggedBytes),
		}
		c.log.Warn("DonutSMP API error",
			"endpoint", endpoint,
			"path", path,
			"status", resp.StatusCode,
			"body", rerr.Body,
		)
		return nil, outcomeStatus, rerr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Error("parsing DonutSMP API response",
			"endpoint", endpoint,
			"path", path,
			"status", resp.StatusCode,
			"err", err,
		)
		return nil, outcomeDecode, fmt.Errorf("%w: parsing response: %w", ErrRemote, err)
	}
	return &env, outcomeOK, nil
}

func isDecodable(status int) bool {
	return (status >= 200 && status < 300) || status == http.StatusInternalServerError
}

func toListing(raw json.RawMessage) (domain.Listing, error) {
	var item auctionItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.Listing{}, err
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Listing{}, err
	}

	l := domain.Listing{
		ItemID:     item.Item.ID,
		SellerName: item.Seller.Name,
		Raw:        payload,
	}
	if item.Price != nil {
		p := item.Price.int64()
		l.Price = &p
	}
	return l, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
