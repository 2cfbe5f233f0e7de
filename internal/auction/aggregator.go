// Package auction implements auction-house search: scanning remote listing
// pages, caching sorted results per chat, and rendering them as pages with
// navigation buttons.
package auction

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	"github.com/donaldgifford/donutsmp-bot/internal/format"
	"github.com/donaldgifford/donutsmp-bot/internal/metrics"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

const (
	// DefaultMaxPages bounds the exhaustive search.
	DefaultMaxPages = 100

	tracerName = "github.com/donaldgifford/donutsmp-bot/internal/auction"
)

// Reasons a scan stopped.
const (
	StoppedEmptyPage  = "empty_page"
	StoppedFetchError = "fetch_error"
	StoppedMaxPages   = "max_pages"
)

// Scan kinds, used as metric labels.
const (
	kindSearch = "search"
	kindLowest = "lowest"
)

// ErrEmptyTerm is returned when a search term is blank after normalization.
var ErrEmptyTerm = errors.New("search term is empty")

// PageSource fetches one page of auction listings. Pages are numbered from 1.
type PageSource interface {
	AuctionPage(ctx context.Context, page int) ([]domain.Listing, error)
}

// Aggregator walks the remote auction pages and collects listings whose
// item name contains a search term.
type Aggregator struct {
	source   PageSource
	log      *slog.Logger
	tracer   trace.Tracer
	maxPages int
	newID    func() string
	nowFunc  func() time.Time
}

// AggregatorOption configures the Aggregator.
type AggregatorOption func(*Aggregator)

// WithMaxPages overrides the page cap for exhaustive searches.
func WithMaxPages(n int) AggregatorOption {
	return func(a *Aggregator) {
		a.maxPages = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.log = l
	}
}

// WithTracerProvider sets the provider scan spans are created from.
func WithTracerProvider(tp trace.TracerProvider) AggregatorOption {
	return func(a *Aggregator) {
		a.tracer = tp.Tracer(tracerName)
	}
}

// WithIDFunc overrides the search id generator.
func WithIDFunc(f func() string) AggregatorOption {
	return func(a *Aggregator) {
		a.newID = f
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.nowFunc = f
	}
}

// NewAggregator creates a new Aggregator reading pages from source.
func NewAggregator(source PageSource, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		source:   source,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
		maxPages: DefaultMaxPages,
		newID:    uuid.NewString,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ScanResult holds the raw outcome of a page walk.
type ScanResult struct {
	Matches   []domain.Listing
	PagesUsed int
	StoppedAt string
}

// Search scans up to the page cap and returns every match sorted by price
// ascending, ties kept in remote order. A search with no matches returns a
// result with no listings, not an error. A blank term returns ErrEmptyTerm
// without fetching anything; otherwise the only error is ctx's.
func (a *Aggregator) Search(ctx context.Context, term string) (*domain.SearchResult, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	scan := a.run(ctx, kindSearch, term, a.maxPages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(scan.Matches, domain.ComparePrice)

	return &domain.SearchResult{
		ID:        a.newID(),
		Term:      term,
		Listings:  scan.Matches,
		CreatedAt: a.nowFunc(),
		Truncated: scan.StoppedAt == StoppedMaxPages,
	}, nil
}

// Lowest scans every page, with no page cap, and returns the cheapest
// match. Ties go to the first listing encountered. It returns nil when
// nothing matched, and ErrEmptyTerm for a blank term.
func (a *Aggregator) Lowest(ctx context.Context, term string) (*domain.Listing, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	scan := a.run(ctx, kindLowest, term, 0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(scan.Matches) == 0 {
		return nil, nil
	}

	lowest := &scan.Matches[0]
	for i := 1; i < len(scan.Matches); i++ {
		if scan.Matches[i].Cheaper(lowest) {
			lowest = &scan.Matches[i]
		}
	}
	return lowest, nil
}

func (a *Aggregator) run(ctx context.Context, kind, term string, maxPages int) *ScanResult {
	ctx, span := a.tracer.Start(ctx, "auction."+kind,
		trace.WithAttributes(
			attribute.String("auction.term", term),
			attribute.Int("auction.max_pages", maxPages),
		),
	)
	defer span.End()

	start := a.nowFunc()
	scan := a.Scan(ctx, term, maxPages)
	elapsed := a.nowFunc().Sub(start)

	span.SetAttributes(
		attribute.Int("auction.pages_used", scan.PagesUsed),
		attribute.Int("auction.matches", len(scan.Matches)),
		attribute.String("auction.stopped_at", scan.StoppedAt),
	)

	metrics.SearchesTotal.WithLabelValues(kind, scan.StoppedAt).Inc()
	metrics.SearchPagesScanned.Observe(float64(scan.PagesUsed))
	metrics.SearchMatches.Observe(float64(len(scan.Matches)))
	metrics.SearchDuration.Observe(elapsed.Seconds())

	a.log.Info("auction scan finished",
		"kind", kind,
		"term", term,
		"pages", scan.PagesUsed,
		"matches", len(scan.Matches),
		"stopped_at", scan.StoppedAt,
		"duration", elapsed,
	)
	return scan
}

// Scan fetches pages 1, 2, ... until a page is empty, a fetch fails, or
// maxPages pages have been fetched. maxPages <= 0 means no cap. Fetch
// errors end the scan the same way an empty page does.
func (a *Aggregator) Scan(ctx context.Context, term string, maxPages int) *ScanResult {
	result := &ScanResult{}

	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		listings, err := a.source.AuctionPage(ctx, page)
		if err != nil {
			if errors.Is(err, donut.ErrNotFound) {
				result.StoppedAt = StoppedEmptyPage
				return result
			}
			a.log.Warn("auction page fetch failed, ending scan",
				"page", page,
				"term", term,
				"err", err,
			)
			result.StoppedAt = StoppedFetchError
			return result
		}

		result.PagesUsed++

		if len(listings) == 0 {
			result.StoppedAt = StoppedEmptyPage
			return result
		}

		for i := range listings {
			if Matches(listings[i].ItemID, term) {
				result.Matches = append(result.Matches, listings[i])
			}
		}
	}

	result.StoppedAt = StoppedMaxPages
	return result
}

// NormalizeItemName turns "minecraft:diamond_sword" into "diamond sword".
func NormalizeItemName(itemID string) string {
	name := strings.ReplaceAll(itemID, format.ItemNamespace, "")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(name)
}

// NormalizeTerm lowercases a search term and collapses its whitespace.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// Matches reports whether the item's normalized name contains term. The
// term is expected to be normalized already.
func Matches(itemID, term string) bool {
	return strings.Contains(NormalizeItemName(itemID), term)
}
