package dexscreener

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/provider"
	"github.com/folyo/folyo/pkg/models"
)

// NormalizePair maps one raw pair into the unified Pair record. Missing
// symbols and names become N/A, missing numbers become 0, and the security
// scan is always empty.
func NormalizePair(raw RawPair) models.Pair {
	baseSymbol := orNA(raw.BaseToken.Symbol)
	quoteSymbol := orNA(raw.QuoteToken.Symbol)

	network := strings.ToLower(strings.TrimSpace(raw.ChainID))
	if network == "" {
		network = chains.Default
	}

	p := models.Pair{
		Name:            models.PairName(raw.BaseToken.Symbol, raw.QuoteToken.Symbol),
		ContractAddress: raw.PairAddress,
		NetworkSlug:     network,

		BaseAssetSymbol:   baseSymbol,
		BaseAssetName:     orNA(raw.BaseToken.Name),
		BaseAssetAddress:  raw.BaseToken.Address,
		QuoteAssetSymbol:  quoteSymbol,
		QuoteAssetName:    orNA(raw.QuoteToken.Name),
		QuoteAssetAddress: raw.QuoteToken.Address,

		Quote: []models.Quote{{
			Price:                 raw.PriceUSD.Float(),
			Volume24h:             raw.Volume.H24.Float(),
			Liquidity:             raw.Liquidity.USD.Float(),
			PercentChangePrice24h: raw.PriceChange.H24.Float(),
			PercentChangePrice6h:  raw.PriceChange.H6.Float(),
			PercentChangePrice1h:  raw.PriceChange.H1.Float(),
			FullyDilutedValue:     raw.FDV.Float(),
			MarketCap:             raw.MarketCap.Float(),
		}},
		Txns: models.TxnWindows{
			M5:  txn(raw.Txns.M5),
			H1:  txn(raw.Txns.H1),
			H6:  txn(raw.Txns.H6),
			H24: txn(raw.Txns.H24),
		},
		Volume: models.VolumeWindows{
			M5:  raw.Volume.M5.Float(),
			H1:  raw.Volume.H1.Float(),
			H6:  raw.Volume.H6.Float(),
			H24: raw.Volume.H24.Float(),
		},

		DexID:     raw.DexID,
		DexSlug:   raw.DexID,
		URL:       raw.URL,
		CreatedAt: createdAt(raw.PairCreatedAt),

		Info:         info(raw.Info),
		SecurityScan: []json.RawMessage{},
	}
	p.NumTransactions24h = p.Txns.H24.Total()
	return p
}

// NormalizeBatch normalizes raws and orders them by descending 24h volume.
// Equal volumes keep upstream order.
func NormalizeBatch(raws []RawPair) []models.Pair {
	out := make([]models.Pair, 0, len(raws))
	for _, r := range raws {
		out = append(out, NormalizePair(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volume24h() > out[j].Volume24h()
	})
	return out
}

// NormalizeBoost maps a raw boost entry. Chain ids are lowercased.
func NormalizeBoost(raw RawBoost) models.BoostedToken {
	return models.BoostedToken{
		URL:          raw.URL,
		ChainID:      strings.ToLower(raw.ChainID),
		TokenAddress: raw.TokenAddress,
		Amount:       raw.Amount.Float(),
		TotalAmount:  raw.TotalAmount.Float(),
		Icon:         raw.Icon,
		Header:       raw.Header,
		Description:  raw.Description,
	}
}

func orNA(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

func txn(t RawTxn) models.TxnCount {
	return models.TxnCount{Buys: t.Buys.Int(), Sells: t.Sells.Int()}
}

// createdAt converts a millisecond epoch; zero or absent yields nil.
func createdAt(ms *provider.Number) *time.Time {
	if ms == nil {
		return nil
	}
	v := int64(ms.Float())
	if v <= 0 {
		return nil
	}
	t := time.UnixMilli(v).UTC()
	return &t
}

func info(raw *RawInfo) models.PairInfo {
	out := models.PairInfo{Websites: []models.Link{}, Socials: []models.Link{}}
	if raw == nil {
		return out
	}
	out.ImageURL = raw.ImageURL
	out.Header = raw.Header
	for _, w := range raw.Websites {
		out.Websites = append(out.Websites, models.Link{Label: w.Label, URL: w.URL})
	}
	for _, s := range raw.Socials {
		out.Socials = append(out.Socials, models.Link{Type: s.Type, URL: s.URL})
	}
	return out
}
