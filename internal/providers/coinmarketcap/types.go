package coinmarketcap

import (
	"encoding/json"

	"github.com/folyo/folyo/internal/provider"
)

// spotPairQuote is one quote entry of a v4 DEX spot pair.
type spotPairQuote struct {
	ConvertID             string          `json:"convert_id"`
	Price                 provider.Number `json:"price"`
	PriceByQuoteAsset     provider.Number `json:"price_by_quote_asset"`
	Volume24h             provider.Number `json:"volume_24h"`
	Liquidity             provider.Number `json:"liquidity"`
	PercentChangePrice1h  provider.Number `json:"percent_change_price_1h"`
	PercentChangePrice6h  provider.Number `json:"percent_change_price_6h"`
	PercentChangePrice24h provider.Number `json:"percent_change_price_24h"`
	FullyDilutedValue     provider.Number `json:"fully_diluted_value"`
	MarketCap             provider.Number `json:"market_cap"`
	NumTransactions24h    provider.Count  `json:"num_transactions_24h"`
	Buy24h                provider.Count  `json:"num_buys_24h"`
	Sell24h               provider.Count  `json:"num_sells_24h"`
}

// spotPair is one row of /v4/dex/spot-pairs/latest and
// /v4/dex/pairs/quotes/latest.
type spotPair struct {
	ContractAddress    string            `json:"contract_address"`
	Name               string            `json:"name"`
	BaseAssetName      string            `json:"base_asset_name"`
	BaseAssetSymbol    string            `json:"base_asset_symbol"`
	BaseAssetAddress   string            `json:"base_asset_contract_address"`
	QuoteAssetName     string            `json:"quote_asset_name"`
	QuoteAssetSymbol   string            `json:"quote_asset_symbol"`
	QuoteAssetAddress  string            `json:"quote_asset_contract_address"`
	DexID              string            `json:"dex_id"`
	DexSlug            string            `json:"dex_slug"`
	NetworkSlug        string            `json:"network_slug"`
	CreatedAt          string            `json:"created_at"`
	NumTransactions24h provider.Count    `json:"num_transactions_24h"`
	ScrollID           string            `json:"scroll_id"`
	SecurityScan       []json.RawMessage `json:"security_scan"`
	Quote              []spotPairQuote   `json:"quote"`
}

// status is the CMC status block.
type status struct {
	ErrorCode    provider.Count `json:"error_code"`
	ErrorMessage string         `json:"error_message"`
}

type spotPairsResponse struct {
	Data   []spotPair `json:"data"`
	Status status     `json:"status"`
}
