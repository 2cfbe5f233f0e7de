// Package main implements a mock DonutSMP API server for local development.
// It serves generated auction listings, sales, player lookups and
// leaderboards so the bot can run without a real API key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// envelope mirrors the {status, result | message} wrapper of the real API.
type envelope struct {
	Status  int    `json:"status"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

type auctionItem struct {
	Item struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	} `json:"item"`
	Seller struct {
		Name string `json:"name"`
	} `json:"seller"`
	Price int64 `json:"price"`
}

type market struct {
	pages    int
	perPage  int
	listings []auctionItem
}

var (
	items = []string{
		"minecraft:diamond_sword", "minecraft:netherite_sword", "minecraft:elytra",
		"minecraft:totem_of_undying", "minecraft:diamond_pickaxe", "minecraft:golden_apple",
		"minecraft:enchanted_golden_apple", "minecraft:spawner", "minecraft:shulker_box",
		"minecraft:beacon", "minecraft:netherite_ingot", "minecraft:dirt",
	}
	sellers = []string{"Steve", "Alex", "Notch", "jeb_", "Dinnerbone", "Grumm"}

	online = map[string]string{
		"steve": "spawn",
		"alex":  "overworld",
	}
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	pages := flag.Int("pages", 20, "number of non-empty auction pages")
	perPage := flag.Int("per-page", 45, "listings per auction page")
	seed := flag.Uint64("seed", 1, "seed for generated listings")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := newMarket(*pages, *perPage, *seed)
	logger.Info("generated market", "pages", m.pages, "listings", len(m.listings))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock DonutSMP server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(logger, m),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMarket(pages, perPage int, seed uint64) *market {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	m := &market{pages: pages, perPage: perPage}
	for range pages * perPage {
		var it auctionItem
		it.Item.ID = items[rng.IntN(len(items))]
		it.Item.Count = 1 + rng.IntN(64)
		it.Seller.Name = sellers[rng.IntN(len(sellers))]
		it.Price = 100 + rng.Int64N(1_000_000)
		m.listings = append(m.listings, it)
	}
	return m
}

func (m *market) page(n int) []auctionItem {
	start := (n - 1) * m.perPage
	if n < 1 || start >= len(m.listings) {
		return []auctionItem{}
	}
	return m.listings[start:min(start+m.perPage, len(m.listings))]
}

func newMux(logger *slog.Logger, m *market) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/auction/list/{page}", auctionHandler(logger, m))
	mux.HandleFunc("GET /v1/auction/transactions/{page}", transactionsHandler(m))
	mux.HandleFunc("GET /v1/lookup/{user}", lookupHandler())
	mux.HandleFunc("GET /v1/stats/{user}", statsHandler())
	mux.HandleFunc("GET /v1/leaderboards/{category}/{page}", leaderboardHandler())
	return requestLogger(logger, requireBearer(mux))
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// requireBearer rejects requests without a bearer token. The token itself
// is not checked.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, envelope{Status: http.StatusUnauthorized, Message: "missing API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func auctionHandler(logger *slog.Logger, m *market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, ok := pageParam(w, r)
		if !ok {
			return
		}
		listings := m.page(n)
		logger.Info("auction page", "page", n, "listings", len(listings))
		writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Result: listings})
	}
}

func transactionsHandler(m *market) http.HandlerFunc {
	type sale struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
		Seller string `json:"seller"`
		Buyer  string `json:"buyer"`
		Price  int64  `json:"price"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		n, ok := pageParam(w, r)
		if !ok {
			return
		}
		listings := m.page(n)
		sales := make([]sale, 0, len(listings))
		for i := range listings {
			var s sale
			s.Item.ID = listings[i].Item.ID
			s.Seller = listings[i].Seller.Name
			s.Buyer = sellers[(i+1)%len(sellers)]
			s.Price = listings[i].Price
			sales = append(sales, s)
		}
		writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Result: sales})
	}
}

func lookupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.PathValue("user")
		location, ok := online[strings.ToLower(user)]
		if !ok {
			// The real API reports offline players as a 500 envelope.
			writeJSON(w, http.StatusInternalServerError, envelope{
				Status:  http.StatusInternalServerError,
				Message: "This user is not currently online.",
			})
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			Status: http.StatusOK,
			Result: map[string]string{"location": location, "rank": "Member"},
		})
	}
}

func statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.PathValue("user")
		if strings.EqualFold(user, "nobody") {
			writeJSON(w, http.StatusNotFound, envelope{Status: http.StatusNotFound, Message: "player not found"})
			return
		}
		seed := uint64(len(user))
		writeJSON(w, http.StatusOK, envelope{
			Status: http.StatusOK,
			Result: map[string]string{
				"money":    strconv.FormatUint(seed*1_234_567, 10),
				"kills":    strconv.FormatUint(seed*42, 10),
				"deaths":   strconv.FormatUint(seed*7, 10),
				"playtime": strconv.FormatUint(seed*3_600_000, 10),
			},
		})
	}
}

func leaderboardHandler() http.HandlerFunc {
	type row struct {
		Username string `json:"username"`
		Value    int64  `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		n, ok := pageParam(w, r)
		if !ok {
			return
		}
		rows := make([]row, 0, len(sellers))
		if n == 1 {
			for i, name := range sellers {
				rows = append(rows, row{Username: name, Value: int64(len(sellers)-i) * 1000})
			}
		}
		writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Result: rows})
	}
}

func pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("page"))
	if err != nil || n < 1 {
		writeJSON(w, http.StatusBadRequest, envelope{Status: http.StatusBadRequest, Message: "invalid page"})
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
