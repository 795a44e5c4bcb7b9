package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/malusev998/currency-swap/services"
)

func (a *app) serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	return server
}

func watchCobraCommand(a *app, count *int) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		interval := a.viper.GetDuration("watch.interval")

		if interval <= 0 {
			return fmt.Errorf("watch interval must be positive, got %s", interval)
		}

		if addr := a.viper.GetString("watch.metrics"); addr != "" {
			server := a.serveMetrics(addr)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()
		}

		session := services.NewSession(a.feed, services.NewLinkedPair(a.viper.GetString("defaults.from"), a.viper.GetString("defaults.to")), a.logger.Named("session"))
		report := func() {
			if err := session.Refresh(ctx); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), services.FetchErrorMessage(err))
				return
			}

			pair := session.Pair()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d currencies, 1 %s = %s %s\n",
				time.Now().UTC().Format(time.RFC3339), len(session.Currencies()),
				pair.Primary.Currency, session.ExchangeRate(), pair.Secondary.Currency)
		}

		report()

		for i := 1; *count <= 0 || i < *count; i++ {
			select {
			case <-time.After(interval):
				report()
			case <-ctx.Done():
				return nil
			}
		}

		return nil
	}
}

func watch(a *app) *cobra.Command {
	var count int

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh prices on an interval and report the default pair rate",
		Args:  cobra.NoArgs,
	}

	watchCmd.RunE = watchCobraCommand(a, &count)
	watchCmd.Flags().Duration("interval", time.Minute, "Time between refreshes")
	watchCmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address")
	watchCmd.Flags().IntVar(&count, "count", 0, "Stop after this many refreshes, 0 runs until interrupted")
	_ = a.viper.BindPFlag("watch.interval", watchCmd.Flags().Lookup("interval"))
	_ = a.viper.BindPFlag("watch.metrics", watchCmd.Flags().Lookup("metrics-addr"))

	return watchCmd
}
