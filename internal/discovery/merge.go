package discovery

import (
	"sort"
	"strings"

	"github.com/folyo/folyo/pkg/models"
)

// Seed is a boosted token together with the badge it earned.
type Seed struct {
	Token models.BoostedToken
	Badge models.Badge
}

// FilterChain keeps the tokens on chain (case-insensitive).
func FilterChain(tokens []models.BoostedToken, chain string) []models.BoostedToken {
	chain = strings.ToLower(chain)
	out := make([]models.BoostedToken, 0, len(tokens))
	for _, t := range tokens {
		if strings.ToLower(t.ChainID) == chain {
			out = append(out, t)
		}
	}
	return out
}

// MergeBoosts dedups latest and top on chain + lowercase address. Latest
// entries come first tagged BOOSTED; unseen top entries follow tagged
// TRENDING. The first occurrence wins.
func MergeBoosts(latest, top []models.BoostedToken) []Seed {
	seen := make(map[string]bool, len(latest)+len(top))
	out := make([]Seed, 0, len(latest)+len(top))

	add := func(tokens []models.BoostedToken, badge models.Badge) {
		for _, t := range tokens {
			key := strings.ToLower(t.ChainID) + ":" + strings.ToLower(t.TokenAddress)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Seed{Token: t, Badge: badge})
		}
	}
	add(latest, models.BadgeBoosted)
	add(top, models.BadgeTrending)
	return out
}

// BestPair returns the highest-liquidity pair whose base or quote token is
// address (case-insensitive). Equal liquidity keeps the earlier candidate.
func BestPair(candidates []models.Pair, address string) (models.Pair, bool) {
	var (
		best  models.Pair
		found bool
	)
	for _, p := range candidates {
		if !strings.EqualFold(p.BaseAssetAddress, address) && !strings.EqualFold(p.QuoteAssetAddress, address) {
			continue
		}
		if !found || p.Liquidity() > best.Liquidity() {
			best, found = p, true
		}
	}
	return best, found
}

// SortByVolume sorts pairs in place by descending 24h volume and returns
// them. Equal volumes keep their order.
func SortByVolume(pairs []models.Pair) []models.Pair {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Volume24h() > pairs[j].Volume24h()
	})
	return pairs
}
