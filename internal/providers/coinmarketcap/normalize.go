package coinmarketcap

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/pkg/models"
)

// networkSlugs maps canonical lowercase slugs to CMC's network_slug casing.
var networkSlugs = map[string]string{
	"ethereum":  "Ethereum",
	"bsc":       "BSC",
	"solana":    "Solana",
	"polygon":   "Polygon",
	"base":      "Base",
	"arbitrum":  "Arbitrum",
	"optimism":  "Optimism",
	"avalanche": "Avalanche",
	"fantom":    "Fantom",
	"tron":      "Tron",
}

// upstreamNetwork converts a canonical slug to the CMC form. Unknown slugs
// pass through unchanged.
func upstreamNetwork(slug string) string {
	if v, ok := networkSlugs[strings.ToLower(slug)]; ok {
		return v
	}
	return slug
}

func normalizePair(raw spotPair) models.Pair {
	var q spotPairQuote
	if len(raw.Quote) > 0 {
		q = raw.Quote[0]
	}

	network := strings.ToLower(raw.NetworkSlug)
	if network == "" {
		network = chains.Default
	}

	p := models.Pair{
		Name:            raw.Name,
		ContractAddress: raw.ContractAddress,
		NetworkSlug:     network,

		BaseAssetSymbol:   orNA(raw.BaseAssetSymbol),
		BaseAssetName:     orNA(raw.BaseAssetName),
		BaseAssetAddress:  raw.BaseAssetAddress,
		QuoteAssetSymbol:  orNA(raw.QuoteAssetSymbol),
		QuoteAssetName:    orNA(raw.QuoteAssetName),
		QuoteAssetAddress: raw.QuoteAssetAddress,

		Quote: []models.Quote{{
			Price:                 q.Price.Float(),
			Volume24h:             q.Volume24h.Float(),
			Liquidity:             q.Liquidity.Float(),
			PercentChangePrice24h: q.PercentChangePrice24h.Float(),
			PercentChangePrice6h:  q.PercentChangePrice6h.Float(),
			PercentChangePrice1h:  q.PercentChangePrice1h.Float(),
			FullyDilutedValue:     q.FullyDilutedValue.Float(),
			MarketCap:             q.MarketCap.Float(),
		}},
		NumTransactions24h: raw.NumTransactions24h.Int(),
		Txns: models.TxnWindows{
			H24: models.TxnCount{Buys: q.Buy24h.Int(), Sells: q.Sell24h.Int()},
		},
		Volume: models.VolumeWindows{H24: q.Volume24h.Float()},

		DexID:     raw.DexID,
		DexSlug:   raw.DexSlug,
		URL:       pairURL(raw.NetworkSlug, raw.ContractAddress),
		CreatedAt: parseTime(raw.CreatedAt),

		Info:         models.PairInfo{Websites: []models.Link{}, Socials: []models.Link{}},
		SecurityScan: raw.SecurityScan,
		ScrollID:     raw.ScrollID,
	}
	if p.Name == "" {
		p.Name = models.PairName(raw.BaseAssetSymbol, raw.QuoteAssetSymbol)
	}
	if p.NumTransactions24h == 0 {
		p.NumTransactions24h = q.NumTransactions24h.Int()
	}
	if p.SecurityScan == nil {
		p.SecurityScan = []json.RawMessage{}
	}
	return p
}

func orNA(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func pairURL(network, address string) string {
	if network == "" || address == "" {
		return ""
	}
	return fmt.Sprintf("https://dex.coinmarketcap.com/token/%s/%s/", strings.ToLower(network), address)
}
