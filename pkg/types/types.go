// Package domain defines the core business types for the DonutSMP bot.
package domain

import (
	"slices"
	"time"
)

// Listing represents a single auction-house offer as returned by the
// DonutSMP API. Listings are immutable once fetched.
type Listing struct {
	ItemID     string `json:"item_id"`
	SellerName string `json:"seller_name"`

	// Price is nil when the remote payload carried no price. Such listings
	// sort after every priced listing.
	Price *int64 `json:"price,omitempty"`

	// Raw holds the listing object exactly as the API returned it.
	Raw map[string]any `json:"raw,omitempty"`
}

// HasPrice reports whether the listing carries a price.
func (l *Listing) HasPrice() bool {
	return l.Price != nil
}

// PriceOrZero returns the listing price, or zero when it has none.
func (l *Listing) PriceOrZero() int64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// Cheaper reports whether l is strictly cheaper than other. A listing
// without a price is never cheaper than anything.
func (l *Listing) Cheaper(other *Listing) bool {
	switch {
	case l.Price == nil:
		return false
	case other.Price == nil:
		return true
	default:
		return *l.Price < *other.Price
	}
}

// ComparePrice orders two listings ascending by price, with unpriced
// listings last. It is suitable for slices.SortStableFunc.
func ComparePrice(a, b Listing) int {
	switch {
	case a.Cheaper(&b):
		return -1
	case b.Cheaper(&a):
		return 1
	default:
		return 0
	}
}

// SearchResult is the sorted outcome of one auction-house search. It is
// created once per search invocation and never modified afterwards.
type SearchResult struct {
	ID        string    `json:"search_id"`
	Term      string    `json:"search_term"`
	Listings  []Listing `json:"listings"`
	CreatedAt time.Time `json:"created_at"`

	// Truncated is set when the scan stopped at the page cap rather than at
	// the end of the remote data.
	Truncated bool `json:"truncated"`
}

// Total returns the number of listings in the result.
func (r *SearchResult) Total() int {
	return len(r.Listings)
}

// Empty reports whether the search found nothing.
func (r *SearchResult) Empty() bool {
	return r == nil || len(r.Listings) == 0
}

// Sale is a completed auction-house transaction.
type Sale struct {
	ItemID string `json:"item_id"`
	Seller string `json:"seller"`
	Buyer  string `json:"buyer"`
	Price  int64  `json:"price"`
}

// OnlineStatus describes whether a player is currently connected.
type OnlineStatus struct {
	Online   bool   `json:"online"`
	Location string `json:"location,omitempty"`
	Rank     string `json:"rank,omitempty"`
}

// PlayerStats holds the headline statistics for a player.
type PlayerStats struct {
	Money    float64       `json:"money"`
	Kills    int64         `json:"kills"`
	Deaths   int64         `json:"deaths"`
	Playtime time.Duration `json:"playtime"`
}

// LeaderboardEntry is a single row of a server leaderboard.
type LeaderboardEntry struct {
	Username string  `json:"username"`
	Value    float64 `json:"value"`
}

// LeaderboardCategory names one of the server leaderboards.
type LeaderboardCategory string

// Leaderboard category constants.
const (
	LeaderboardMoney        LeaderboardCategory = "money"
	LeaderboardPlaytime     LeaderboardCategory = "playtime"
	LeaderboardKills        LeaderboardCategory = "kills"
	LeaderboardDeaths       LeaderboardCategory = "deaths"
	LeaderboardMobsKilled   LeaderboardCategory = "mobskilled"
	LeaderboardSell         LeaderboardCategory = "sell"
	LeaderboardShop         LeaderboardCategory = "shop"
	LeaderboardBrokenBlocks LeaderboardCategory = "brokenblocks"
	LeaderboardPlacedBlocks LeaderboardCategory = "placedblocks"
	LeaderboardShards       LeaderboardCategory = "shards"
)

// LeaderboardCategories lists every category in display order.
var LeaderboardCategories = []LeaderboardCategory{
	LeaderboardMoney,
	LeaderboardPlaytime,
	LeaderboardKills,
	LeaderboardDeaths,
	LeaderboardMobsKilled,
	LeaderboardSell,
	LeaderboardShop,
	LeaderboardBrokenBlocks,
	LeaderboardPlacedBlocks,
	LeaderboardShards,
}

// LeaderboardPageSize is the number of rows the API returns per page.
const LeaderboardPageSize = 50

// IsValid reports whether c is a known leaderboard category.
func (c LeaderboardCategory) IsValid() bool {
	return slices.Contains(LeaderboardCategories, c)
}
