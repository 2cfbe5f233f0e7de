package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	"github.com/donaldgifford/donutsmp-bot/internal/donut"
	"github.com/donaldgifford/donutsmp-bot/internal/format"
	"github.com/donaldgifford/donutsmp-bot/internal/metrics"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// Command names.
const (
	CmdStart       = "start"
	CmdHelp        = "help"
	CmdIsOnline    = "isonline"
	CmdStats       = "stats"
	CmdAuctions    = "auctions"
	CmdSales       = "sales"
	CmdLeaderboard = "leaderboard"
	CmdAuction     = "ah"
	CmdPrice       = "price"
)

// listLimit caps the rows shown for a single remote page.
const listLimit = 10

const unknownErrorText = "Sorry, an unknown API error occurred\\."

var titleCaser = cases.Title(language.English)

// HandleCommand runs the handler registered for cmd.Name. Unknown commands
// are ignored.
func (b *Bot) HandleCommand(ctx context.Context, cmd Command) {
	handlers := map[string]func(context.Context, Command){
		CmdStart:       b.handleHelp,
		CmdHelp:        b.handleHelp,
		CmdIsOnline:    b.handleIsOnline,
		CmdStats:       b.handleStats,
		CmdAuctions:    b.handleAuctions,
		CmdSales:       b.handleSales,
		CmdLeaderboard: b.handleLeaderboard,
		CmdAuction:     b.handleAuctionSearch,
		CmdPrice:       b.handlePrice,
	}

	name := strings.ToLower(cmd.Name)
	h, ok := handlers[name]
	if !ok {
		b.log.Debug("ignoring unknown command", "command", cmd.Name, "chat_id", cmd.ChatID)
		return
	}

	metrics.CommandsTotal.WithLabelValues(name).Inc()
	b.log.Debug("handling command", "command", name, "chat_id", cmd.ChatID, "args", cmd.Args)
	h(ctx, cmd)
}

// HelpText lists the available commands.
func HelpText() string {
	categories := make([]string, len(domain.LeaderboardCategories))
	for i, c := range domain.LeaderboardCategories {
		categories[i] = string(c)
	}

	var sb strings.Builder
	sb.WriteString("🍩 *DonutSMP Bot Commands*\n\n")
	sb.WriteString("`/isonline {username}`\nChecks if a player is online\\.\n\n")
	sb.WriteString("`/stats {username}`\nShows detailed stats for a player\\.\n\n")
	sb.WriteString("`/auctions {page}`\nLists all items currently for sale\\.\n\n")
	sb.WriteString("`/ah {item name}`\nSearches for an item on the AH \\(can be very slow\\)\\.\n\n")
	sb.WriteString("`/price {item name}`\nFinds the single lowest price for an item \\(can be very slow\\)\\.\n\n")
	sb.WriteString("`/sales {page}`\nLists recent auction house sales\\.\n\n")
	sb.WriteString("`/leaderboard {category} {page}`\nShows a server leaderboard\\.\n\n")
	sb.WriteString("*Available categories for leaderboard:*\n")
	sb.WriteString("`" + strings.Join(categories, ", ") + "`")
	return sb.String()
}

func (b *Bot) handleHelp(ctx context.Context, cmd Command) {
	b.replyText(ctx, cmd.ChatID, HelpText())
}

func (b *Bot) handleIsOnline(ctx context.Context, cmd Command) {
	if len(cmd.Args) == 0 {
		b.replyText(ctx, cmd.ChatID, "Usage: `/isonline {username}`")
		return
	}
	username := cmd.Args[0]
	name := format.Escape(username)

	b.replyText(ctx, cmd.ChatID, "🔍 Searching for "+name+"\\.\\.\\.")

	status, err := b.api.Lookup(ctx, username)
	switch {
	case errors.Is(err, donut.ErrUnexpectedPayload):
		b.replyText(ctx, cmd.ChatID, unknownErrorText)
	case err != nil:
		b.replyText(ctx, cmd.ChatID, notFoundText(username))
	case !status.Online:
		b.replyText(ctx, cmd.ChatID, "❌ *"+name+"* is Offline\\.")
	default:
		b.replyText(ctx, cmd.ChatID, fmt.Sprintf(
			"✅ *%s is Online\\!*\n\nCurrently on: `%s`\nRank: `%s`",
			name,
			format.Escape(orUnknown(status.Location)),
			format.Escape(orUnknown(status.Rank)),
		))
	}
}

func (b *Bot) handleStats(ctx context.Context, cmd Command) {
	if len(cmd.Args) == 0 {
		b.replyText(ctx, cmd.ChatID, "Usage: `/stats {username}`")
		return
	}
	username := cmd.Args[0]

	b.replyText(ctx, cmd.ChatID, "📊 Fetching stats for "+format.Escape(username)+"\\.\\.\\.")

	stats, err := b.api.Stats(ctx, username)
	switch {
	case errors.Is(err, donut.ErrUnexpectedPayload):
		b.replyText(ctx, cmd.ChatID, "Could not retrieve stats for this player\\.")
		return
	case err != nil:
		b.replyText(ctx, cmd.ChatID, notFoundText(username))
		return
	}

	b.replyText(ctx, cmd.ChatID, StatsText(username, stats))
}

// StatsText renders a player's stats card.
func StatsText(username string, s *domain.PlayerStats) string {
	return fmt.Sprintf(
		"*Stats for %s*\n💰 Money: `%s`\n⚔️ Kills: `%s`\n💀 Deaths: `%s`\n⏰ Playtime: `%s`",
		format.Escape(username),
		format.Escape(format.Number(int64(s.Money))),
		format.Escape(strconv.FormatInt(s.Kills, 10)),
		format.Escape(strconv.FormatInt(s.Deaths, 10)),
		format.Escape(format.Playtime(s.Playtime)),
	)
}

func (b *Bot) handleAuctions(ctx context.Context, cmd Command) {
	page, ok := parsePage(cmd.Args, 0)
	if !ok {
		b.replyText(ctx, cmd.ChatID, "Usage: `/auctions {page}`")
		return
	}

	b.replyText(ctx, cmd.ChatID, fmt.Sprintf("🛒 Fetching Auction House page %d\\.\\.\\.", page))

	listings, err := b.api.AuctionPage(ctx, page)
	if err != nil || len(listings) == 0 {
		b.replyText(ctx, cmd.ChatID, "No auction items found on this page\\.")
		return
	}

	lines := []string{fmt.Sprintf("*Auction House \\- Page %d*", page)}
	for i := range listings[:min(len(listings), listLimit)] {
		lines = append(lines, auction.ListingLine(&listings[i]))
	}
	b.replyText(ctx, cmd.ChatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleSales(ctx context.Context, cmd Command) {
	page, ok := parsePage(cmd.Args, 0)
	if !ok {
		b.replyText(ctx, cmd.ChatID, "Usage: `/sales {page}`")
		return
	}

	b.replyText(ctx, cmd.ChatID, fmt.Sprintf("📈 Fetching recent sales page %d\\.\\.\\.", page))

	sales, err := b.api.TransactionsPage(ctx, page)
	if err != nil || len(sales) == 0 {
		b.replyText(ctx, cmd.ChatID, "No recent sales found on this page\\.")
		return
	}

	lines := []string{fmt.Sprintf("*Recent Sales \\- Page %d*", page)}
	for _, s := range sales[:min(len(sales), listLimit)] {
		lines = append(lines, fmt.Sprintf("`%s` sold by *%s* to *%s* for `$%s`\\.",
			format.Escape(format.ItemName(s.ItemID)),
			format.Escape(orUnknown(s.Seller)),
			format.Escape(orUnknown(s.Buyer)),
			format.Escape(format.Number(s.Price)),
		))
	}
	b.replyText(ctx, cmd.ChatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleLeaderboard(ctx context.Context, cmd Command) {
	const usage = "Usage: `/leaderboard {category}`\\.\nSee `/help` for categories\\."

	if len(cmd.Args) == 0 {
		b.replyText(ctx, cmd.ChatID, usage)
		return
	}
	category := domain.LeaderboardCategory(strings.ToLower(cmd.Args[0]))
	page, ok := parsePage(cmd.Args, 1)
	if !category.IsValid() || !ok {
		b.replyText(ctx, cmd.ChatID, usage)
		return
	}
	name := format.Escape(string(category))

	b.replyText(ctx, cmd.ChatID, fmt.Sprintf("🏆 Fetching *%s* leaderboard page %d\\.\\.\\.", name, page))

	entries, err := b.api.Leaderboard(ctx, category, page)
	if err != nil || len(entries) == 0 {
		b.replyText(ctx, cmd.ChatID, fmt.Sprintf("No data found for the *%s* leaderboard\\.", name))
		return
	}

	b.replyText(ctx, cmd.ChatID, LeaderboardText(category, page, entries))
}

// LeaderboardText renders one leaderboard page. Ranks continue across pages.
func LeaderboardText(category domain.LeaderboardCategory, page int, entries []domain.LeaderboardEntry) string {
	lines := []string{fmt.Sprintf("*%s Leaderboard \\- Page %d*",
		format.Escape(titleCaser.String(string(category))), page)}

	for i, e := range entries {
		rank := (page-1)*domain.LeaderboardPageSize + i + 1
		lines = append(lines, fmt.Sprintf("`%d`\\. *%s* \\- %s",
			rank,
			format.Escape(orUnknown(e.Username)),
			format.Escape(format.Number(int64(e.Value))),
		))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) handleAuctionSearch(ctx context.Context, cmd Command) {
	term := auction.NormalizeTerm(strings.Join(cmd.Args, " "))
	if term == "" {
		b.replyText(ctx, cmd.ChatID, "Usage: `/ah {item name}`")
		return
	}
	escaped := format.Escape(term)

	b.replyText(ctx, cmd.ChatID, fmt.Sprintf(
		"🔎 Searching all auctions for `%s`\\. This may take a moment\\.\\.\\.", escaped))

	result, err := b.searcher.Search(ctx, term)
	if err != nil {
		b.log.Warn("auction search aborted", "term", term, "err", err)
		return
	}
	if result.Empty() {
		b.replyText(ctx, cmd.ChatID, noMatchText(escaped))
		return
	}

	resp, err := b.router.Open(cmd.ChatID, result)
	if err != nil {
		b.log.Error("storing search result", "term", term, "search_id", result.ID, "err", err)
		b.replyText(ctx, cmd.ChatID, unknownErrorText)
		return
	}

	b.reply(ctx, cmd.ChatID, Reply{Text: resp.Text, Controls: resp.Controls})
}

func (b *Bot) handlePrice(ctx context.Context, cmd Command) {
	term := auction.NormalizeTerm(strings.Join(cmd.Args, " "))
	if term == "" {
		b.replyText(ctx, cmd.ChatID, "Usage: `/price {item name}`")
		return
	}
	escaped := format.Escape(term)

	b.replyText(ctx, cmd.ChatID, fmt.Sprintf(
		"🔎 Searching all auctions for `%s`\\. This will be very slow\\.\\.\\.", escaped))

	lowest, err := b.searcher.Lowest(ctx, term)
	if err != nil {
		b.log.Warn("price search aborted", "term", term, "err", err)
		return
	}
	if lowest == nil {
		b.replyText(ctx, cmd.ChatID, noMatchText(escaped))
		return
	}

	b.replyText(ctx, cmd.ChatID, LowestPriceText(lowest))
}

// LowestPriceText renders the result of a minimum-price search.
func LowestPriceText(l *domain.Listing) string {
	return fmt.Sprintf("💎 *Lowest Price Found*\n\nItem: `%s`\nSeller: *%s*\nPrice: `$%s`",
		format.Escape(format.ItemName(l.ItemID)),
		format.Escape(orUnknown(l.SellerName)),
		format.Escape(format.Number(l.PriceOrZero())),
	)
}

// parsePage reads a 1-based page number from args[idx], defaulting to 1 when
// absent.
func parsePage(args []string, idx int) (int, bool) {
	if len(args) <= idx {
		return 1, true
	}
	page, err := strconv.Atoi(args[idx])
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

func notFoundText(username string) string {
	return "🤷 Player `" + format.Escape(username) + "` not found\\."
}

func noMatchText(escapedTerm string) string {
	return "Could not find any items matching `" + escapedTerm + "`\\."
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
