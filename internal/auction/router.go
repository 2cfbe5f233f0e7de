package auction

import (
	"fmt"
	"log/slog"

	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// ExpiredText replaces the message when a navigation token points at a
// search the cache no longer holds.
const ExpiredText = "This search has expired or is invalid\\. Please run the command again\\."

// Response is what the chat layer should display after opening a search or
// handling a navigation event.
type Response struct {
	Text     string
	Controls []Control
	Expired  bool
}

// Router stores new searches and resolves navigation tokens against them.
type Router struct {
	cache    *Cache
	renderer *Renderer
	log      *slog.Logger
}

// NewRouter creates a Router over cache and renderer.
func NewRouter(cache *Cache, renderer *Renderer, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{cache: cache, renderer: renderer, log: log}
}

// Open caches result for chatID and renders its first page.
func (r *Router) Open(chatID int64, result *domain.SearchResult) (Response, error) {
	if err := r.cache.Put(chatID, result); err != nil {
		return Response{}, fmt.Errorf("caching search %s: %w", result.ID, err)
	}

	text, controls := r.renderer.Render(result, 0)
	return Response{Text: text, Controls: controls}, nil
}

// Navigate resolves callback data sent from chatID. It reports false when
// data is not a navigation token, in which case the event should be ignored.
// A token for a search that is missing or expired yields ExpiredText.
func (r *Router) Navigate(chatID int64, data string) (Response, bool) {
	token, err := ParseNavToken(data)
	if err != nil {
		r.log.Debug("ignoring callback", "chat_id", chatID, "data", data, "err", err)
		return Response{}, false
	}

	result, ok := r.cache.Get(chatID, token.SearchID)
	if !ok {
		r.log.Debug("search not cached", "chat_id", chatID, "search_id", token.SearchID)
		return Response{Text: ExpiredText, Expired: true}, true
	}

	text, controls := r.renderer.Render(result, token.Page)
	return Response{Text: text, Controls: controls}, true
}
