// Package bot handles chat commands and button presses, relaying them to the
// DonutSMP API and the auction search.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	"github.com/donaldgifford/donutsmp-bot/internal/metrics"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// ErrNotRunning is returned by Ready while the update loop is stopped.
var ErrNotRunning = errors.New("bot is not receiving updates")

// Searcher runs auction-house searches.
type Searcher interface {
	Search(ctx context.Context, term string) (*domain.SearchResult, error)
	Lowest(ctx context.Context, term string) (*domain.Listing, error)
}

// Bot dispatches chat updates to command handlers.
type Bot struct {
	api       donut.API
	searcher  Searcher
	router    *auction.Router
	messenger Messenger
	log       *slog.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) {
		b.log = l
	}
}

// New creates a Bot.
func New(
	api donut.API,
	searcher Searcher,
	router *auction.Router,
	messenger Messenger,
	opts ...Option,
) *Bot {
	b := &Bot{
		api:       api,
		searcher:  searcher,
		router:    router,
		messenger: messenger,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run consumes updates from src until ctx is done or the source closes.
// Each update is handled on its own goroutine. Run waits for in-flight
// handlers before returning.
func (b *Bot) Run(ctx context.Context, src UpdateSource) error {
	updates := src.Updates(ctx)

	b.running.Store(true)
	b.log.Info("bot started, receiving updates")

	defer func() {
		b.running.Store(false)
		b.wg.Wait()
		b.log.Info("bot stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.Dispatch(ctx, u)
			}()
		}
	}
}

// Ready reports whether the update loop is running.
func (b *Bot) Ready(context.Context) error {
	if !b.running.Load() {
		return ErrNotRunning
	}
	return nil
}

// Dispatch handles a single update synchronously.
func (b *Bot) Dispatch(ctx context.Context, u Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic handling update", "panic", r)
		}
	}()

	switch {
	case u.Command != nil:
		b.HandleCommand(ctx, *u.Command)
	case u.Callback != nil:
		b.HandleCallback(ctx, *u.Callback)
	}
}

// HandleCallback answers a button press and, for navigation tokens, edits
// the message to show the requested page.
func (b *Bot) HandleCallback(ctx context.Context, cb Callback) {
	if err := b.messenger.AnswerCallback(ctx, cb.ID); err != nil {
		b.log.Debug("answering callback failed", "callback_id", cb.ID, "err", err)
	}

	resp, ok := b.router.Navigate(cb.ChatID, cb.Data)
	if !ok {
		metrics.CallbacksTotal.WithLabelValues("ignored").Inc()
		return
	}

	outcome := "page"
	if resp.Expired {
		outcome = "expired"
	}
	metrics.CallbacksTotal.WithLabelValues(outcome).Inc()

	err := b.messenger.Edit(ctx, cb.ChatID, cb.MessageID, Reply{Text: resp.Text, Controls: resp.Controls})
	if err != nil {
		// Telegram rejects edits that leave the message unchanged.
		metrics.SendFailuresTotal.Inc()
		b.log.Debug("editing message failed",
			"chat_id", cb.ChatID,
			"message_id", cb.MessageID,
			"err", err,
		)
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, r Reply) {
	if _, err := b.messenger.Send(ctx, chatID, r); err != nil {
		metrics.SendFailuresTotal.Inc()
		b.log.Warn("sending message failed", "chat_id", chatID, "err", err)
	}
}

func (b *Bot) replyText(ctx context.Context, chatID int64, text string) {
	b.reply(ctx, chatID, Reply{Text: text})
}
