package auction

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// KindAuctionSearch tags tokens that page through an /ah search.
	KindAuctionSearch = "ah"

	tokenSeparator = ":"

	// MaxTokenLength is Telegram's limit on inline button callback data.
	MaxTokenLength = 64

	// MaxTokenPage is the largest page index a token may carry.
	MaxTokenPage = math.MaxInt32
)

// ErrInvalidToken is returned for callback data that is not a navigation
// token this bot produced.
var ErrInvalidToken = errors.New("invalid navigation token")

// NavToken identifies a cached search and the page to show. On the wire it
// is the string "ah:<search_id>:<page>".
type NavToken struct {
	Kind     string
	SearchID string
	Page     int
}

// NewNavToken returns a token for page of the given search.
func NewNavToken(searchID string, page int) NavToken {
	return NavToken{Kind: KindAuctionSearch, SearchID: searchID, Page: page}
}

// String encodes the token for use as button callback data.
func (t NavToken) String() string {
	return t.Kind + tokenSeparator + t.SearchID + tokenSeparator + strconv.Itoa(t.Page)
}

// ParseNavToken decodes and validates callback data.
func ParseNavToken(data string) (NavToken, error) {
	if len(data) > MaxTokenLength {
		return NavToken{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidToken, len(data), MaxTokenLength)
	}

	parts := strings.Split(data, tokenSeparator)
	if len(parts) != 3 {
		return NavToken{}, fmt.Errorf("%w: want 3 fields, got %d", ErrInvalidToken, len(parts))
	}

	kind, searchID, pageStr := parts[0], parts[1], parts[2]
	if kind != KindAuctionSearch {
		return NavToken{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidToken, kind)
	}
	if searchID == "" {
		return NavToken{}, fmt.Errorf("%w: empty search id", ErrInvalidToken)
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return NavToken{}, fmt.Errorf("%w: page %q: %w", ErrInvalidToken, pageStr, err)
	}
	if page < 0 {
		return NavToken{}, fmt.Errorf("%w: negative page %d", ErrInvalidToken, page)
	}
	if page > MaxTokenPage {
		return NavToken{}, fmt.Errorf("%w: page %d exceeds %d", ErrInvalidToken, page, MaxTokenPage)
	}

	return NavToken{Kind: kind, SearchID: searchID, Page: page}, nil
}
