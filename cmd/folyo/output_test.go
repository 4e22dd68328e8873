package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folyo/folyo/internal/discovery"
	"github.com/folyo/folyo/internal/session"
	"github.com/folyo/folyo/pkg/models"
)

func samplePair() models.Pair {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Pair{
		Name:             "PEPE/WETH",
		ContractAddress:  "0xa43fe16908251ee70ef74718545e4fe6c5ccec9f",
		NetworkSlug:      "ethereum",
		BaseAssetSymbol:  "PEPE",
		BaseAssetAddress: "0x6982508145454ce325ddbe47a25d4ec3d2311933",
		QuoteAssetSymbol: "WETH",
		DexSlug:          "uniswap-v2",
		CreatedAt:        &created,
		Quote: []models.Quote{{
			Price:                 0.00001234,
			Volume24h:             1500000,
			Liquidity:             2500000,
			PercentChangePrice24h: 3.5,
		}},
		Txns:        models.TxnWindows{H24: models.TxnCount{Buys: 10, Sells: 5}},
		Badge:       models.BadgeBoosted,
		BoostAmount: 500,
	}
}

func stubNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

func TestPrintPairsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printPairs(&buf, nil)
	assert.Equal(t, "No pairs found.\n", buf.String())
}

func TestPrintPairsRow(t *testing.T) {
	stubNow(t)
	var buf bytes.Buffer
	printPairs(&buf, []models.Pair{samplePair()})

	out := buf.String()
	assert.Contains(t, out, "PEPE/WETH")
	assert.Contains(t, out, "Ethereum")
	assert.Contains(t, out, "$1.50M")
	assert.Contains(t, out, "+3.50%")
	assert.Contains(t, out, "10d")
	assert.Contains(t, out, "🚀 BOOSTED (500)")
}

func TestPrintPairDetail(t *testing.T) {
	stubNow(t)
	var buf bytes.Buffer
	printPair(&buf, samplePair())

	out := buf.String()
	assert.Contains(t, out, "Txns 24h")
	assert.Contains(t, out, "15 (10 buys / 5 sells)")
	assert.Contains(t, out, "https://etherscan.io/address/0xa43fe16908251ee70ef74718545e4fe6c5ccec9f")
	assert.Contains(t, out, "https://etherscan.io/token/0x6982508145454ce325ddbe47a25d4ec3d2311933")
	// quote asset has no address
	assert.Regexp(t, `WETH\s+-\s+-`, out)
}

func TestTxnTotalFallback(t *testing.T) {
	p := models.Pair{NumTransactions24h: 42}
	assert.Equal(t, 42, txnTotal(p))
}

// stubStrategy records the chains it was asked for.
type stubStrategy struct {
	name string

	mu     sync.Mutex
	chains []string
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) FetchPairs(_ context.Context, chain string, _ int) ([]models.Pair, error) {
	s.mu.Lock()
	s.chains = append(s.chains, chain)
	s.mu.Unlock()
	return []models.Pair{samplePair()}, nil
}

func TestRunInteractive(t *testing.T) {
	boosted := &stubStrategy{name: "boosted"}
	popular := &stubStrategy{name: "popular"}
	table := session.NewTable(boosted, "all", 10, nil)
	require.NoError(t, table.Load(context.Background()))

	newStrategy := func(name string) (discovery.Strategy, error) {
		if name == "popular" {
			return popular, nil
		}
		return discovery.New(name, nil, nil, nil)
	}

	in := bufio.NewScanner(strings.NewReader("c bsc\n\nbogus\ns popular\nq\nc never\n"))
	require.NoError(t, runInteractive(context.Background(), table, newStrategy, in))

	assert.Equal(t, []string{"all", "bsc"}, boosted.chains)
	assert.Equal(t, []string{"bsc"}, popular.chains)

	snap := table.Snapshot()
	assert.Equal(t, "popular", snap.Strategy)
	assert.Equal(t, "bsc", snap.State.Chain)
}
