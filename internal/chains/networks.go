// Package chains holds the static chain tables used by the dashboard:
// the network catalog, the curated seed-token registry, and per-chain
// address validation. Chain slugs are lowercase; lookups are case-insensitive.
package chains

import "strings"

// All is the chain filter sentinel meaning "every chain".
const All = "all"

// Default is the chain used when a strategy cannot serve All.
const Default = "ethereum"

// Network holds display metadata for one chain.
type Network struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Gradient    string `json:"gradient"`
	ExplorerURL string `json:"explorer_url"`
	Available   bool   `json:"available"`
}

const (
	fallbackColor    = "#666666"
	fallbackGradient = "linear-gradient(135deg, #666666 0%, #999999 100%)"
	fallbackIcon     = "●"
	fallbackExplorer = "https://etherscan.io"
)

var networks = []Network{
	{"ethereum", "Ethereum", "ETH", "Ξ", "#627EEA", "linear-gradient(135deg, #627EEA 0%, #8A9FFE 100%)", "https://etherscan.io", true},
	{"bsc", "BNB Smart Chain", "BSC", "Ⓑ", "#F3BA2F", "linear-gradient(135deg, #F3BA2F 0%, #FDD85D 100%)", "https://bscscan.com", true},
	{"solana", "Solana", "SOL", "Ⓢ", "#14F195", "linear-gradient(135deg, #14F195 0%, #9945FF 100%)", "https://solscan.io", true},
	{"polygon", "Polygon", "MATIC", "⬡", "#8247E5", "linear-gradient(135deg, #8247E5 0%, #B47CFF 100%)", "https://polygonscan.com", true},
	{"base", "Base", "BASE", "Ⓑ", "#0052FF", "linear-gradient(135deg, #0052FF 0%, #4C8BFF 100%)", "https://basescan.org", true},
	{"arbitrum", "Arbitrum", "ARB", "Ⓐ", "#28A0F0", "linear-gradient(135deg, #28A0F0 0%, #7CC5F5 100%)", "https://arbiscan.io", true},
	{"optimism", "Optimism", "OP", "Ⓞ", "#FF0420", "linear-gradient(135deg, #FF0420 0%, #FF5A70 100%)", "https://optimistic.etherscan.io", true},
	{"avalanche", "Avalanche", "AVAX", "△", "#E84142", "linear-gradient(135deg, #E84142 0%, #F57C7D 100%)", "https://snowtrace.io", true},
	// Listed by the upstream but without usable pair data.
	{"fantom", "Fantom", "FTM", "Ⓕ", "#1969FF", "linear-gradient(135deg, #1969FF 0%, #6B9BFF 100%)", "https://ftmscan.com", false},
	{"tron", "Tron", "TRX", "Ⓣ", "#EB0029", "linear-gradient(135deg, #EB0029 0%, #FF5C6E 100%)", "https://tronscan.org", false},
}

// Lookup returns the network for slug, or false if it is unknown.
func Lookup(slug string) (Network, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, n := range networks {
		if n.Slug == slug {
			return n, true
		}
	}
	return Network{}, false
}

// Networks returns the whole catalog in display order.
func Networks() []Network {
	out := make([]Network, len(networks))
	copy(out, networks)
	return out
}

// Available returns the networks flagged as having pair data.
func Available() []Network {
	var out []Network
	for _, n := range networks {
		if n.Available {
			out = append(out, n)
		}
	}
	return out
}

// Name returns the display name of slug, or slug itself when unknown.
func Name(slug string) string {
	if n, ok := Lookup(slug); ok {
		return n.Name
	}
	return slug
}

func Color(slug string) string {
	if n, ok := Lookup(slug); ok {
		return n.Color
	}
	return fallbackColor
}

func Gradient(slug string) string {
	if n, ok := Lookup(slug); ok {
		return n.Gradient
	}
	return fallbackGradient
}

func Icon(slug string) string {
	if n, ok := Lookup(slug); ok {
		return n.Icon
	}
	return fallbackIcon
}

// ExplorerURL returns the block explorer base URL for slug.
// Unknown chains fall back to etherscan.
func ExplorerURL(slug string) string {
	if n, ok := Lookup(slug); ok {
		return n.ExplorerURL
	}
	return fallbackExplorer
}

// AddressURL links to an account or pair contract on the chain's explorer.
func AddressURL(slug, address string) string {
	return ExplorerURL(slug) + "/address/" + address
}

// TokenURL links to a token contract on the chain's explorer.
func TokenURL(slug, address string) string {
	return ExplorerURL(slug) + "/token/" + address
}

// Normalize lowercases and trims a chain slug. An empty slug becomes All.
func Normalize(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return All
	}
	return slug
}
