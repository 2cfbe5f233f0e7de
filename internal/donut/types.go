package donut

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// envelope is the {status, result | message} wrapper around every response.
type envelope struct {
	Status  int             `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// hasResult reports whether the envelope carries a non-null result.
func (e *envelope) hasResult() bool {
	trimmed := bytes.TrimSpace(e.Result)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// auctionItem is one entry of /auction/list/{page}.
type auctionItem struct {
	Item struct {
		ID string `json:"id"`
	} `json:"item"`
	Seller struct {
		Name string `json:"name"`
	} `json:"seller"`
	Price *number `json:"price"`
}

// transaction is one entry of /auction/transactions/{page}.
type transaction struct {
	Item struct {
		ID string `json:"id"`
	} `json:"item"`
	Seller string `json:"seller"`
	Buyer  string `json:"buyer"`
	Price  number `json:"price"`
}

// lookupResult is the result of /lookup/{user}.
type lookupResult struct {
	Location string `json:"location"`
	Rank     string `json:"rank"`
}

// statsResult is the result of /stats/{user}. Playtime is in milliseconds.
type statsResult struct {
	Money    number `json:"money"`
	Kills    number `json:"kills"`
	Deaths   number `json:"deaths"`
	Playtime number `json:"playtime"`
}

// leaderboardRow is one entry of /leaderboards/{category}/{page}.
type leaderboardRow struct {
	Username string `json:"username"`
	Value    number `json:"value"`
}

// number decodes a JSON number that the API sometimes sends as a string.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decoding number %q: %w", s, err)
	}
	*n = number(f)
	return nil
}

func (n number) int64() int64 {
	return int64(n)
}
