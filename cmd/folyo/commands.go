package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folyo/folyo/internal/chains"
	"github.com/folyo/folyo/internal/detail"
	"github.com/folyo/folyo/internal/discovery"
	"github.com/folyo/folyo/internal/session"
	"github.com/folyo/folyo/pkg/models"
)

// --- Pairs Command ---

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List discovered pairs for a chain",
	Long: `List the pairs the discovery strategy selects for a chain.

With --interactive the table stays open and reads commands from stdin:
  n            next page
  p            previous page
  r            reload
  c <chain>    switch chain (resets paging)
  s <strategy> switch strategy
  q            quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, _ := cmd.Flags().GetString("chain")
		name, _ := cmd.Flags().GetString("strategy")
		limit, _ := cmd.Flags().GetInt("limit")
		interactive, _ := cmd.Flags().GetBool("interactive")
		if chain == "" {
			chain = cfg.Discovery.DefaultChain
		}
		if name == "" {
			name = cfg.Discovery.Strategy
		}
		if limit <= 0 {
			limit = cfg.Discovery.PageSize
		}

		client, closeClient, err := buildClient()
		if err != nil {
			return err
		}
		defer closeClient()

		strategy, err := discovery.New(name, client, logger, nil)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		table := session.NewTable(strategy, chains.Normalize(chain), limit, logger)
		if err := table.Load(ctx); err != nil {
			return err
		}
		printSnapshot(os.Stdout, table.Snapshot())
		if !interactive {
			return nil
		}

		newStrategy := func(name string) (discovery.Strategy, error) {
			return discovery.New(name, client, logger, nil)
		}
		return runInteractive(ctx, table, newStrategy, bufio.NewScanner(os.Stdin))
	},
}

func init() {
	pairsCmd.Flags().String("chain", "", "chain slug or \"all\" (default: discovery.default_chain)")
	pairsCmd.Flags().String("strategy", "", "discovery strategy: "+strings.Join(discovery.Names, ", "))
	pairsCmd.Flags().Int("limit", 0, "page size (default: discovery.page_size)")
	pairsCmd.Flags().BoolP("interactive", "i", false, "keep the table open and page with stdin commands")
}

// runInteractive drives table from line commands until "q" or EOF.
func runInteractive(ctx context.Context, table *session.Table, newStrategy func(string) (discovery.Strategy, error), in *bufio.Scanner) error {
	fmt.Print("> ")
	for in.Scan() {
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		var err error
		switch fields[0] {
		case "q", "quit", "exit":
			return nil
		case "n", "next":
			err = table.NextPage(ctx)
		case "p", "prev":
			err = table.PrevPage(ctx)
		case "r", "reload":
			err = table.Load(ctx)
		case "c", "chain":
			if len(fields) < 2 {
				err = errors.New("usage: c <chain>")
				break
			}
			err = table.SelectChain(ctx, fields[1])
		case "s", "strategy":
			if len(fields) < 2 {
				err = errors.New("usage: s <strategy>")
				break
			}
			var s discovery.Strategy
			if s, err = newStrategy(fields[1]); err == nil {
				err = table.SelectStrategy(ctx, s)
			}
		default:
			err = fmt.Errorf("unknown command %q", fields[0])
		}

		if err != nil && !errors.Is(err, session.ErrSuperseded) {
			fmt.Fprintln(os.Stderr, "error:", err)
		} else {
			printSnapshot(os.Stdout, table.Snapshot())
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Print("> ")
	}
	return in.Err()
}

// --- Pair Command ---

var pairCmd = &cobra.Command{
	Use:   "pair <chain> <address>",
	Short: "Show one pair in detail",
	Long: `Show one pair in detail. With --watch the pair is refreshed on
detail.refresh_interval_sec until interrupted. SIGUSR1 pauses refreshing
and SIGUSR2 resumes it with an immediate refresh.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain := chains.Normalize(args[0])
		address := strings.TrimSpace(args[1])
		if chain == chains.All {
			return errors.New("a specific chain is required")
		}
		if err := chains.ValidAddress(chain, address); err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetBool("watch")

		client, closeClient, err := buildClient()
		if err != nil {
			return err
		}
		defer closeClient()

		ctx, cancel := signalContext(cmd)
		defer cancel()

		w := detail.NewWatcher(client, chain, address, cfg.RefreshInterval(), logger)
		pair, err := w.Load(ctx)
		if err != nil {
			return err
		}
		printPair(os.Stdout, pair)
		if !watch {
			return nil
		}

		w.OnRefresh(func(p models.Pair) {
			fmt.Println()
			printPair(os.Stdout, p)
		})

		vis := make(chan os.Signal, 1)
		signal.Notify(vis, syscall.SIGUSR1, syscall.SIGUSR2)
		defer signal.Stop(vis)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case sig := <-vis:
					visible := sig == syscall.SIGUSR2
					logger.Info("visibility changed", zap.Bool("visible", visible))
					w.SetVisible(visible)
				}
			}
		}()

		logger.Info("watching pair", zap.Duration("interval", w.Interval()))
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	pairCmd.Flags().BoolP("watch", "w", false, "refresh the pair until interrupted")
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search pairs by symbol, name or address",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeClient, err := buildClient()
		if err != nil {
			return err
		}
		defer closeClient()

		pairs, err := client.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		printPairs(os.Stdout, pairs)
		return nil
	},
}

// --- Networks Command ---

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks, optionally with their top pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		if top <= 0 {
			printNetworks(os.Stdout, chains.Networks())
			return nil
		}

		client, closeClient, err := buildClient()
		if err != nil {
			return err
		}
		defer closeClient()

		name, _ := cmd.Flags().GetString("strategy")
		if name == "" {
			name = cfg.Discovery.Strategy
		}
		strategy, err := discovery.New(name, client, logger, nil)
		if err != nil {
			return err
		}

		for _, nt := range discovery.TopByNetwork(cmd.Context(), strategy, chains.Available(), top, logger) {
			fmt.Printf("%s %s\n", nt.Network.Icon, nt.Network.Name)
			if len(nt.Pairs) == 0 {
				fmt.Println("  no pairs available")
				continue
			}
			printPairs(os.Stdout, nt.Pairs)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	networksCmd.Flags().Int("top", 0, "show the top N pairs of every available network")
	networksCmd.Flags().String("strategy", "", "discovery strategy for --top")
}
