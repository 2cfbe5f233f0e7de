package auction

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/donutsmp-bot/internal/format"
	domain "github.com/donaldgifford/donutsmp-bot/pkg/types"
)

// PageSize is the number of listings shown per page.
const PageSize = 10

// Button labels.
const (
	LabelPrevious = "⬅️ Previous"
	LabelNext     = "Next ➡️"
)

// Page is a derived view over a SearchResult. It is never stored.
type Page struct {
	Index       int
	Items       []domain.Listing
	Total       int
	HasPrevious bool
	HasNext     bool
}

// Control is a navigation button attached to a rendered page.
type Control struct {
	Label string
	Token NavToken
}

// Renderer slices search results into fixed-size pages.
type Renderer struct {
	pageSize int
}

// NewRenderer creates a Renderer. A non-positive pageSize selects PageSize.
func NewRenderer(pageSize int) *Renderer {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Renderer{pageSize: pageSize}
}

// Page computes the view for pageIndex. Out-of-range indexes yield an
// empty page rather than an error.
func (r *Renderer) Page(result *domain.SearchResult, pageIndex int) Page {
	total := result.Total()
	p := Page{
		Index:       pageIndex,
		Total:       total,
		HasPrevious: pageIndex > 0,
	}

	// Checked before multiplying so huge indexes cannot overflow.
	if pageIndex < 0 || total == 0 || pageIndex > (total-1)/r.pageSize {
		return p
	}

	start := pageIndex * r.pageSize
	end := min(start+r.pageSize, total)
	p.Items = result.Listings[start:end]
	p.HasNext = end < total
	return p
}

// Render produces the MarkdownV2 text for pageIndex and its navigation
// controls. Rendering the same page twice gives identical output.
func (r *Renderer) Render(result *domain.SearchResult, pageIndex int) (string, []Control) {
	p := r.Page(result, pageIndex)

	lines := make([]string, 0, len(p.Items)+1)
	lines = append(lines, fmt.Sprintf(
		"Found *%d* match\\(es\\) for `%s`\\. Page %d:",
		p.Total,
		format.Escape(result.Term),
		p.Index+1,
	))
	for i := range p.Items {
		lines = append(lines, ListingLine(&p.Items[i]))
	}

	var controls []Control
	if p.HasPrevious {
		controls = append(controls, Control{
			Label: LabelPrevious,
			Token: NewNavToken(result.ID, pageIndex-1),
		})
	}
	if p.HasNext {
		controls = append(controls, Control{
			Label: LabelNext,
			Token: NewNavToken(result.ID, pageIndex+1),
		})
	}

	return strings.Join(lines, "\n"), controls
}

// ListingLine renders one listing as "`Item` from *Seller* for `$1,234`.".
func ListingLine(l *domain.Listing) string {
	return fmt.Sprintf("`%s` from *%s* for `$%s`\\.",
		format.Escape(format.ItemName(l.ItemID)),
		format.Escape(sellerName(l.SellerName)),
		format.Escape(format.Number(l.PriceOrZero())),
	)
}

func sellerName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
