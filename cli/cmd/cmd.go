package cmd

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/malusev998/currency-swap"
	"github.com/malusev998/currency-swap/fetchers"
	"github.com/malusev998/currency-swap/services"
)

const (
	defaultConfigFile = "./config.yml"
	envPrefix         = "CURRENCY_SWAP"
)

type (
	// FetcherFactory builds the price feed source from configuration. The
	// returned close function releases whatever connection the source holds.
	FetcherFactory func(ctx context.Context, v *viper.Viper) (currency.Fetcher, func() error, error)

	Options struct {
		Factory FetcherFactory
		// Logger replaces the logger built from the --debug flag.
		Logger *zap.Logger
	}

	app struct {
		options    Options
		viper      *viper.Viper
		debug      bool
		configFile string

		logger   *zap.Logger
		registry *prometheus.Registry
		feed     *services.PriceFeed
		close    func() error
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetcher", string(currency.HTTPProvider))
	v.SetDefault("fetchers.http.url", fetchers.SwitcheoPricesURL)
	v.SetDefault("fetchers.http.timeout", fetchers.DefaultHTTPTimeout)
	v.SetDefault("fetchers.mysql.table", fetchers.DefaultMySQLTable)
	v.SetDefault("defaults.from", "USD")
	v.SetDefault("defaults.to", "LUNA")
	v.SetDefault("watch.interval", time.Minute)
	v.SetDefault("watch.metrics", "")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func (a *app) loadConfig() error {
	a.viper.SetEnvPrefix(envPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.viper.AutomaticEnv()

	absolutePath, err := filepath.Abs(a.configFile)

	if err != nil {
		return err
	}

	a.viper.SetConfigFile(absolutePath)

	if err := a.viper.ReadInConfig(); err != nil {
		// the default config file is optional, an explicit one is not
		if a.configFile == defaultConfigFile && errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}

	return nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	a.logger = a.options.Logger

	if a.logger == nil {
		logger, err := newLogger(a.debug)

		if err != nil {
			return err
		}

		a.logger = logger
	}

	fetcher, closeFn, err := a.options.Factory(cmd.Context(), a.viper)

	if err != nil {
		return err
	}

	a.close = closeFn
	a.registry = prometheus.NewRegistry()
	a.feed = services.NewPriceFeed(fetcher, a.logger.Named("feed"), services.NewFeedMetrics(a.registry))

	a.logger.Debug("configuration loaded",
		zap.String("config", a.viper.ConfigFileUsed()),
		zap.String("fetcher", a.viper.GetString("fetcher")),
	)

	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}

	if a.close != nil {
		return a.close()
	}

	return nil
}

// newSession refreshes the feed once so the session starts from real prices.
// A failed first fetch is not fatal, the session reports it like any other.
func (a *app) newSession(ctx context.Context, from, to string) *services.Session {
	session := services.NewSession(a.feed, services.NewLinkedPair(from, to), a.logger.Named("session"))

	if err := session.Refresh(ctx); err != nil {
		a.logger.Warn("initial price fetch failed", zap.Error(err))
	}

	return session
}

func NewRootCommand(options Options) *cobra.Command {
	a := &app{
		options: options,
		viper:   viper.New(),
	}

	setDefaults(a.viper)

	rootCmd := &cobra.Command{
		Use:                "currency-swap",
		Short:              "Price feed driven currency converter",
		Version:            "v2.0.0",
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", defaultConfigFile, "Path to config file")

	rootCmd.AddCommand(
		prices(a),
		rate(a),
		convert(a),
		swap(a),
		watch(a),
	)

	return rootCmd
}

func Execute(ctx context.Context, options Options) error {
	return NewRootCommand(options).ExecuteContext(ctx)
}
