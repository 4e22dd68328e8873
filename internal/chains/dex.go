package chains

import "strings"

var dexNames = map[string]string{
	"uniswap":        "Uniswap",
	"uniswap-v2":     "Uniswap V2",
	"uniswap-v3":     "Uniswap V3",
	"uniswap-v4":     "Uniswap V4",
	"pancakeswap":    "PancakeSwap",
	"pancakeswap-v2": "PancakeSwap V2",
	"pancakeswap-v3": "PancakeSwap V3",
	"curve-finance":  "Curve",
	"curve":          "Curve",
	"sushiswap":      "SushiSwap",
	"balancer":       "Balancer",
	"quickswap":      "QuickSwap",
	"trader-joe":     "Trader Joe",
	"traderjoe":      "Trader Joe",
	"raydium":        "Raydium",
	"orca":           "Orca",
	"meteora":        "Meteora",
	"aerodrome":      "Aerodrome",
	"velodrome":      "Velodrome",
	"camelot":        "Camelot",
}

// DexName returns the display name of a DEX venue slug. Unknown slugs are
// title-cased word by word on '-'.
func DexName(slug string) string {
	if slug == "" {
		return "Unknown"
	}
	key := strings.ToLower(slug)
	if name, ok := dexNames[key]; ok {
		return name
	}
	parts := strings.Split(key, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
