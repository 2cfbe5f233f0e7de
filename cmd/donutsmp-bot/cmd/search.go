package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/donutsmp-bot/internal/api/client"
	"github.com/donaldgifford/donutsmp-bot/internal/api/handlers"
	"github.com/donaldgifford/donutsmp-bot/internal/auction"
)

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the auction house for an item",
		Long: "Scans the auction house for listings whose item name contains the term\n" +
			"and prints them cheapest first. With --server the scan runs on the bot's\n" +
			"ops API instead of locally.",
		Example: `  donutsmp-bot search diamond sword
  donutsmp-bot search elytra --limit 5 --output json`,
		Args: termArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum rows to print (0 for all)")

	return cmd
}

// termArgs requires a search term with at least one non-space character.
func termArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if auction.NormalizeTerm(strings.Join(args, " ")) == "" {
		return fmt.Errorf("%w: give an item name to search for", auction.ErrEmptyTerm)
	}
	return nil
}

func runSearch(cmd *cobra.Command, term string, limit int) error {
	var (
		resp *apiclient.SearchResponse
		err  error
	)
	if remote() {
		resp, err = newClient().Search(cmd.Context(), term)
	} else {
		resp, err = searchLocal(cmd.Context(), term)
	}
	if err != nil {
		return fmt.Errorf("searching auctions: %w", err)
	}

	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), resp)
	}
	return printSearchTable(cmd.OutOrStdout(), resp, limit)
}

func priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <term>",
		Short: "Find the cheapest auction listing for an item",
		Long: "Scans every auction page, with no page cap, and prints the single\n" +
			"cheapest listing whose item name contains the term.",
		Example: `  donutsmp-bot price elytra`,
		Args:    termArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd, strings.Join(args, " "))
		},
	}
}

func runPrice(cmd *cobra.Command, term string) error {
	var (
		resp *apiclient.PriceResponse
		err  error
	)
	if remote() {
		resp, err = newClient().Price(cmd.Context(), term)
	} else {
		resp, err = priceLocal(cmd.Context(), term)
	}
	if errors.Is(err, apiclient.ErrNotFound) {
		_, werr := fmt.Fprintf(cmd.OutOrStdout(), "No listings match %q.\n", term)
		return werr
	}
	if err != nil {
		return fmt.Errorf("finding lowest price: %w", err)
	}

	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), resp)
	}
	return printPriceDetail(cmd.OutOrStdout(), resp)
}

func newLocalAggregator() (*auction.Aggregator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	return auction.NewAggregator(newDonutClient(cfg, log),
		auction.WithMaxPages(cfg.Search.MaxPages),
		auction.WithLogger(log),
	), nil
}

func searchLocal(ctx context.Context, term string) (*apiclient.SearchResponse, error) {
	agg, err := newLocalAggregator()
	if err != nil {
		return nil, err
	}

	res, err := agg.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	resp := &apiclient.SearchResponse{
		SearchID:  res.ID,
		Term:      res.Term,
		Total:     res.Total(),
		Truncated: res.Truncated,
		CreatedAt: res.CreatedAt,
		Listings:  make([]handlers.ListingView, len(res.Listings)),
	}
	for i := range res.Listings {
		resp.Listings[i] = handlers.NewListingView(&res.Listings[i])
	}
	return resp, nil
}

func priceLocal(ctx context.Context, term string) (*apiclient.PriceResponse, error) {
	agg, err := newLocalAggregator()
	if err != nil {
		return nil, err
	}

	lowest, err := agg.Lowest(ctx, term)
	if err != nil {
		return nil, err
	}
	if lowest == nil {
		return nil, apiclient.ErrNotFound
	}
	return &apiclient.PriceResponse{
		Term:    auction.NormalizeTerm(term),
		Listing: handlers.NewListingView(lowest),
	}, nil
}
