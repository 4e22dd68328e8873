package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/session"
	"github.com/folyo/folyo/pkg/models"
	"github.com/folyo/folyo/pkg/utils"
)

// now is stubbed in tests.
var now = time.Now

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printPairs writes one row per pair.
func printPairs(w io.Writer, pairs []models.Pair) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No pairs found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tPAIR\tNETWORK\tDEX\tPRICE\t24H\tVOLUME\tLIQUIDITY\tAGE\tBADGE")
	for i, p := range pairs {
		q := p.Metrics()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			p.Name,
			chains.Name(p.NetworkSlug),
			chains.DexName(p.DexSlug),
			utils.FormatPrice(q.Price),
			utils.FormatPct(q.PercentChangePrice24h),
			"$"+utils.FormatCompact(q.Volume24h, 2),
			"$"+utils.FormatCompact(q.Liquidity, 2),
			utils.FormatAge(p.CreatedAt, now()),
			badge(p),
		)
	}
	_ = tw.Flush()
}

// printSnapshot writes the table page with a paging footer.
func printSnapshot(w io.Writer, s session.Snapshot) {
	chain := s.State.Chain
	label := "All networks"
	if chain != chains.All {
		label = chains.Name(chain)
	}
	fmt.Fprintf(w, "%s · %s · page %d\n", label, s.Strategy, s.State.Page())

	printPairs(w, s.Pairs)

	var nav []string
	if s.State.HasPrev() {
		nav = append(nav, "[p] prev")
	}
	if s.HasNext() {
		nav = append(nav, "[n] next")
	}
	if len(nav) > 0 {
		fmt.Fprintln(w, strings.Join(nav, "  "))
	}
}

// printPair writes the detail view of one pair.
func printPair(w io.Writer, p models.Pair) {
	q := p.Metrics()
	tw := newTable(w)

	fmt.Fprintf(tw, "Pair\t%s\n", p.Name)
	fmt.Fprintf(tw, "Network\t%s\n", chains.Name(p.NetworkSlug))
	fmt.Fprintf(tw, "DEX\t%s\n", chains.DexName(p.DexSlug))
	fmt.Fprintf(tw, "Price\t%s\n", utils.FormatPrice(q.Price))
	fmt.Fprintf(tw, "Change 1h / 6h / 24h\t%s / %s / %s\n",
		utils.FormatPct(q.PercentChangePrice1h),
		utils.FormatPct(q.PercentChangePrice6h),
		utils.FormatPct(q.PercentChangePrice24h))
	fmt.Fprintf(tw, "Volume 24h\t$%s\n", utils.FormatFull(q.Volume24h, 0))
	fmt.Fprintf(tw, "Liquidity\t$%s\n", utils.FormatFull(q.Liquidity, 0))
	if q.MarketCap > 0 {
		fmt.Fprintf(tw, "Market cap\t$%s\n", utils.FormatCompact(q.MarketCap, 2))
	}
	if q.FullyDilutedValue > 0 {
		fmt.Fprintf(tw, "FDV\t$%s\n", utils.FormatCompact(q.FullyDilutedValue, 2))
	}
	h24 := p.Txns.H24
	fmt.Fprintf(tw, "Txns 24h\t%d (%d buys / %d sells)\n", txnTotal(p), h24.Buys, h24.Sells)
	fmt.Fprintf(tw, "Age\t%s\n", utils.FormatAge(p.CreatedAt, now()))
	if b := badge(p); b != "" {
		fmt.Fprintf(tw, "Boost\t%s\n", b)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "ADDRESS\tVALUE\tEXPLORER")
	addressRow(tw, "Pair", p.NetworkSlug, p.ContractAddress, chains.AddressURL)
	addressRow(tw, p.BaseAssetSymbol, p.NetworkSlug, p.BaseAssetAddress, chains.TokenURL)
	addressRow(tw, p.QuoteAssetSymbol, p.NetworkSlug, p.QuoteAssetAddress, chains.TokenURL)
	_ = tw.Flush()

	if p.URL != "" {
		fmt.Fprintf(w, "\n%s\n", p.URL)
	}
}

func addressRow(tw *tabwriter.Writer, label, chain, addr string, link func(string, string) string) {
	if addr == "" {
		fmt.Fprintf(tw, "%s\t-\t-\n", label)
		return
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\n", label, utils.ShortAddress(chains.DisplayAddress(chain, addr)), link(chain, addr))
}

// printNetworks writes the network catalog.
func printNetworks(w io.Writer, networks []chains.Network) {
	tw := newTable(w)
	fmt.Fprintln(tw, "\tSLUG\tNAME\tEXPLORER\tPAIRS")
	for _, n := range networks {
		avail := "yes"
		if !n.Available {
			avail = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.Icon, n.Slug, n.Name, n.ExplorerURL, avail)
	}
	_ = tw.Flush()
}

// txnTotal prefers the 24h window counts and falls back to the upstream total.
func txnTotal(p models.Pair) int {
	if t := p.Txns.H24.Total(); t > 0 {
		return t
	}
	return p.NumTransactions24h
}

func badge(p models.Pair) string {
	switch p.Badge {
	case "":
		return ""
	case models.BadgeTrending:
		return fmt.Sprintf("🔥 %s (%s)", p.Badge, utils.FormatCompact(p.BoostAmount, 0))
	default:
		return fmt.Sprintf("🚀 %s (%s)", p.Badge, utils.FormatCompact(p.BoostAmount, 0))
	}
}
