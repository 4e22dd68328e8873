// Package models defines the canonical records shared by the gateway,
// the discovery pipeline and the presentation layers.
package models

import (
	"encoding/json"
	"time"
)

// Placeholder used for missing token symbols and names.
const NotAvailable = "N/A"

// Badge marks how a pair was surfaced by boost-based discovery.
type Badge string

const (
	BadgeBoosted  Badge = "BOOSTED"
	BadgeTrending Badge = "TRENDING"
)

// Quote is the market metrics snapshot of a pair. All values are USD.
type Quote struct {
	Price                 float64 `json:"price"`
	Volume24h             float64 `json:"volume_24h"`
	Liquidity             float64 `json:"liquidity"`
	PercentChangePrice24h float64 `json:"percent_change_price_24h"`
	PercentChangePrice6h  float64 `json:"percent_change_price_6h"`
	PercentChangePrice1h  float64 `json:"percent_change_price_1h"`
	FullyDilutedValue     float64 `json:"fully_diluted_value"`
	MarketCap             float64 `json:"market_cap"`
}

// TxnCount holds buy and sell counts for one window.
type TxnCount struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Total returns buys + sells.
func (t TxnCount) Total() int { return t.Buys + t.Sells }

// TxnWindows holds transaction counts per rolling window.
type TxnWindows struct {
	M5  TxnCount `json:"m5"`
	H1  TxnCount `json:"h1"`
	H6  TxnCount `json:"h6"`
	H24 TxnCount `json:"h24"`
}

// VolumeWindows holds USD volume per rolling window.
type VolumeWindows struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Link is a website or social link attached to a token.
type Link struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// PairInfo is presentation metadata published for the base token.
type PairInfo struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Header   string `json:"header,omitempty"`
	Websites []Link `json:"websites"`
	Socials  []Link `json:"socials"`
}

// Pair is a tradable base/quote combination on one DEX venue and chain.
// ContractAddress + NetworkSlug identify a pair within one result set.
type Pair struct {
	Name            string `json:"name"`
	ContractAddress string `json:"contract_address"`
	NetworkSlug     string `json:"network_slug"`

	BaseAssetSymbol   string `json:"base_asset_symbol"`
	BaseAssetName     string `json:"base_asset_name"`
	BaseAssetAddress  string `json:"base_asset_contract_address"`
	QuoteAssetSymbol  string `json:"quote_asset_symbol"`
	QuoteAssetName    string `json:"quote_asset_name"`
	QuoteAssetAddress string `json:"quote_asset_contract_address"`

	// Quote always has exactly one element; the list shape leaves room for
	// per-currency quotes.
	Quote              []Quote       `json:"quote"`
	NumTransactions24h int           `json:"num_transactions_24h"`
	Txns               TxnWindows    `json:"txns"`
	Volume             VolumeWindows `json:"volume"`

	DexID     string     `json:"dex_id"`
	DexSlug   string     `json:"dex_slug"`
	URL       string     `json:"url"`
	CreatedAt *time.Time `json:"created_at"`

	Info         PairInfo          `json:"info"`
	SecurityScan []json.RawMessage `json:"security_scan"`
	ScrollID     string            `json:"scroll_id,omitempty"`

	Badge            Badge   `json:"badge,omitempty"`
	BoostAmount      float64 `json:"boost_amount,omitempty"`
	BoostDescription string  `json:"boost_description,omitempty"`
}

// Metrics returns the first quote, or a zero quote when none is present.
func (p Pair) Metrics() Quote {
	if len(p.Quote) == 0 {
		return Quote{}
	}
	return p.Quote[0]
}

func (p Pair) Liquidity() float64 { return p.Metrics().Liquidity }
func (p Pair) Volume24h() float64 { return p.Metrics().Volume24h }

// WithBoost returns a copy of p annotated with the boost that surfaced it.
func (p Pair) WithBoost(t BoostedToken, badge Badge) Pair {
	p.Badge = badge
	p.BoostAmount = t.TotalAmount
	p.BoostDescription = t.Description
	return p
}

// Key returns the identity key of the pair within a result set.
func (p Pair) Key() string {
	return p.NetworkSlug + ":" + p.ContractAddress
}

// PairName builds "BASE/QUOTE", substituting N/A for missing sides.
func PairName(base, quote string) string {
	if base == "" {
		base = NotAvailable
	}
	if quote == "" {
		quote = NotAvailable
	}
	return base + "/" + quote
}
