// Package donut provides a DonutSMP REST API client abstracted behind an
// interface for testability.
package donut

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

var (
	// ErrNotFound is returned when the API answers 404: the player does not
	// exist, or the requested page is past the end of the data.
	ErrNotFound = errors.New("not found")

	// ErrRemote marks failures talking to the API: unexpected status codes,
	// transport errors and undecodable payloads.
	ErrRemote = errors.New("remote API error")

	// ErrUnexpectedPayload is returned when the API answered but the
	// envelope does not look like any known response.
	ErrUnexpectedPayload = errors.New("unexpected API payload")
)

// RemoteError describes a non-2xx, non-404, non-500 API response.
type RemoteError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("DonutSMP API error on %s (status %d): %s", e.Endpoint, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match RemoteError against ErrRemote.
func (*RemoteError) Unwrap() error {
	return ErrRemote
}

// API defines the read-only DonutSMP operations the bot relies on.
type API interface {
	Lookup(ctx context.Context, username string) (*domain.OnlineStatus, error)
	Stats(ctx context.Context, username string) (*domain.PlayerStats, error)
	AuctionPage(ctx context.Context, page int) ([]domain.Listing, error)
	TransactionsPage(ctx context.Context, page int) ([]domain.Sale, error)
	Leaderboard(
		ctx context.Context,
		category domain.LeaderboardCategory,
		page int,
	) ([]domain.LeaderboardEntry, error)
}
