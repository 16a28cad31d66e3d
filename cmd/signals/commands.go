package main

import (
	"sort"

	"github.com/spf13/cobra"

	"stockSignals/internal/app"
	"stockSignals/internal/report"
	"stockSignals/internal/strategy"
)

// signals fetch AAPL MSFT --size=full
func newFetchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch SYMBOL...",
		Short: "load daily prices for symbols into the local cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := rt.outputSize(cmd)
			if err != nil {
				return err
			}

			data, err := rt.provider.LoadMany(cmd.Context(), args, size)
			if err != nil {
				return err
			}

			report.RenderSummary(cmd.OutOrStdout(), data)
			return nil
		},
	}
}

// signals signals AAPL --fast=20 --slow=50 --tail=10
func newSignalsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals SYMBOL...",
		Short: "compute EMA crossover signals for symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := rt.outputSize(cmd)
			if err != nil {
				return err
			}

			fast, _ := cmd.Flags().GetInt("fast")
			slow, _ := cmd.Flags().GetInt("slow")
			if fast == 0 {
				fast = rt.cfg.FastPeriod
			}
			if slow == 0 {
				slow = rt.cfg.SlowPeriod
			}

			strat, err := strategy.New(strategy.Config{FastPeriod: fast, SlowPeriod: slow}, rt.logger.WithPrefix("strategy"))
			if err != nil {
				return err
			}

			svc, err := app.NewSignalService(rt.provider, strat)
			if err != nil {
				return err
			}

			results, err := svc.Run(cmd.Context(), args, size)
			if err != nil {
				return err
			}

			tail, _ := cmd.Flags().GetInt("tail")
			crossovers, _ := cmd.Flags().GetBool("crossovers")

			symbols := make([]string, 0, len(results))
			for s := range results {
				symbols = append(symbols, s)
			}
			sort.Strings(symbols)

			out := cmd.OutOrStdout()
			for _, s := range symbols {
				if crossovers {
					report.RenderCrossovers(out, results[s])
				} else {
					report.RenderSignals(out, results[s], tail)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("fast", 0, "fast EMA span (default from FAST_PERIOD)")
	cmd.Flags().Int("slow", 0, "slow EMA span (default from SLOW_PERIOD)")
	cmd.Flags().Int("tail", 10, "number of most recent rows to print, 0 for all")
	cmd.Flags().Bool("crossovers", false, "print only entry and exit rows")
	return cmd
}
