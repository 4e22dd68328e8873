package dexscreener

import "github.com/folyo/folyo/internal/provider"

// RawToken is a base or quote token descriptor as returned upstream.
type RawToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// RawTxn is a buy/sell count for one window.
type RawTxn struct {
	Buys  provider.Count `json:"buys"`
	Sells provider.Count `json:"sells"`
}

// RawTxnWindows holds per-window transaction counts.
type RawTxnWindows struct {
	M5  RawTxn `json:"m5"`
	H1  RawTxn `json:"h1"`
	H6  RawTxn `json:"h6"`
	H24 RawTxn `json:"h24"`
}

// RawWindows holds a float per rolling window (volume, price change).
type RawWindows struct {
	M5  provider.Number `json:"m5"`
	H1  provider.Number `json:"h1"`
	H6  provider.Number `json:"h6"`
	H24 provider.Number `json:"h24"`
}

// RawLiquidity is pool liquidity in USD and in each token.
type RawLiquidity struct {
	USD   provider.Number `json:"usd"`
	Base  provider.Number `json:"base"`
	Quote provider.Number `json:"quote"`
}

// RawWebsite is a project website entry.
type RawWebsite struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RawSocial is a project social link entry.
type RawSocial struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RawInfo is the presentation metadata block of a pair.
type RawInfo struct {
	ImageURL  string       `json:"imageUrl"`
	Header    string       `json:"header"`
	OpenGraph string       `json:"openGraph"`
	Websites  []RawWebsite `json:"websites"`
	Socials   []RawSocial  `json:"socials"`
}

// RawPair is one pair object from the tokens, pairs and search endpoints.
// Every field is optional; numeric fields tolerate strings and nulls.
type RawPair struct {
	ChainID       string           `json:"chainId"`
	DexID         string           `json:"dexId"`
	URL           string           `json:"url"`
	PairAddress   string           `json:"pairAddress"`
	Labels        []string         `json:"labels"`
	BaseToken     RawToken         `json:"baseToken"`
	QuoteToken    RawToken         `json:"quoteToken"`
	PriceNative   provider.Number  `json:"priceNative"`
	PriceUSD      provider.Number  `json:"priceUsd"`
	Txns          RawTxnWindows    `json:"txns"`
	Volume        RawWindows       `json:"volume"`
	PriceChange   RawWindows       `json:"priceChange"`
	Liquidity     RawLiquidity     `json:"liquidity"`
	FDV           provider.Number  `json:"fdv"`
	MarketCap     provider.Number  `json:"marketCap"`
	PairCreatedAt *provider.Number `json:"pairCreatedAt"`
	Info          *RawInfo         `json:"info"`
}

// pairsResponse is the shape of /latest/dex/pairs and /latest/dex/search.
type pairsResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []RawPair `json:"pairs"`
	Pair          *RawPair  `json:"pair"`
}

// RawLink is a link attached to a boosted token.
type RawLink struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RawBoost is one entry of the token-boosts feeds.
type RawBoost struct {
	URL          string          `json:"url"`
	ChainID      string          `json:"chainId"`
	TokenAddress string          `json:"tokenAddress"`
	Amount       provider.Number `json:"amount"`
	TotalAmount  provider.Number `json:"totalAmount"`
	Icon         string          `json:"icon"`
	Header       string          `json:"header"`
	Description  string          `json:"description"`
	Links        []RawLink       `json:"links"`
}
