package provider

// Endpoint is a logical relay endpoint name, as passed in ?endpoint=.
type Endpoint string

// --- Centralized listings (passthrough) ---
const (
	EndpointListings        Endpoint = "listings"
	EndpointGlobalMetrics   Endpoint = "global-metrics"
	EndpointFearGreed       Endpoint = "fear-greed"
	EndpointCryptoInfo      Endpoint = "crypto-info"
	EndpointCryptoQuotes    Endpoint = "crypto-quotes"
	EndpointOHLCVHistorical Endpoint = "ohlcv-historical"
)

// --- DEX pairs (unified envelope) ---
const (
	EndpointDexPairs      Endpoint = "dex-pairs"
	EndpointDexPairQuotes Endpoint = "dex-pair-quotes"
	EndpointScreenerToken Endpoint = "dex-screener-tokens"
	EndpointScreenerPair  Endpoint = "dex-screener-pair"
	EndpointScreenerQuery Endpoint = "dex-screener-search"
)

// --- Boost feeds ---
const (
	EndpointBoostsLatest Endpoint = "dex-screener-boosts-latest"
	EndpointBoostsTop    Endpoint = "dex-screener-boosts-top"
)

// AllEndpoints lists every logical endpoint the relay recognizes.
var AllEndpoints = []Endpoint{
	EndpointListings,
	EndpointGlobalMetrics,
	EndpointFearGreed,
	EndpointCryptoInfo,
	EndpointCryptoQuotes,
	EndpointOHLCVHistorical,
	EndpointDexPairs,
	EndpointDexPairQuotes,
	EndpointScreenerToken,
	EndpointScreenerPair,
	EndpointScreenerQuery,
	EndpointBoostsLatest,
	EndpointBoostsTop,
}

// IsPairEndpoint reports whether ep returns the unified pair envelope.
func IsPairEndpoint(ep Endpoint) bool {
	switch ep {
	case EndpointDexPairs, EndpointDexPairQuotes, EndpointScreenerToken,
		EndpointScreenerPair, EndpointScreenerQuery:
		return true
	}
	return false
}

// IsBoostEndpoint reports whether ep returns a boosted-token list.
func IsBoostEndpoint(ep Endpoint) bool {
	return ep == EndpointBoostsLatest || ep == EndpointBoostsTop
}
