package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/donutsmp-bot/internal/api/client"
	"github.com/donaldgifford/donutsmp-bot/internal/api/handlers"
	"github.com/donaldgifford/donutsmp-bot/internal/format"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSearchTable(w io.Writer, resp *apiclient.SearchResponse, limit int) error {
	tw := newTabWriter(w)
	tw.writef("Found %d match(es) for %q", resp.Total, resp.Term)
	if resp.Truncated {
		tw.writef(" (page cap reached)")
	}
	tw.writef("\n\n#\tITEM\tSELLER\tPRICE\n")

	rows := resp.Listings
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		tw.writef("%d\t%s\t%s\t%s\n",
			i+1,
			truncate(rows[i].Name, 40),
			sellerOrUnknown(rows[i].Seller),
			price(&rows[i]),
		)
	}
	if hidden := len(resp.Listings) - len(rows); hidden > 0 {
		tw.writef("... %d more\n", hidden)
	}
	return tw.finish()
}

func printPriceDetail(w io.Writer, resp *apiclient.PriceResponse) error {
	tw := newTabWriter(w)
	tw.writef("Item:\t%s\n", resp.Listing.Name)
	tw.writef("Item ID:\t%s\n", resp.Listing.ItemID)
	tw.writef("Seller:\t%s\n", sellerOrUnknown(resp.Listing.Seller))
	tw.writef("Price:\t%s\n", price(&resp.Listing))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func price(l *handlers.ListingView) string {
	if l.Price == nil {
		return "-"
	}
	return "$" + format.Number(*l.Price)
}

func sellerOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
