package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-swap/fetchers"
)

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CURRENCY_SWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func TestNewFetcher(t *testing.T) {
	ctx := context.Background()

	t.Run("HTTP", func(t *testing.T) {
		asserts := require.New(t)
		v := viper.New()
		v.Set("fetcher", "http")
		v.Set("fetchers.http.url", "http://prices.local/prices.json")
		v.Set("fetchers.http.timeout", "3s")

		fetcher, closeFn, err := newFetcher(ctx, v)

		asserts.NoError(err)
		asserts.NoError(closeFn())
		httpFetcher, ok := fetcher.(fetchers.HTTPFetcher)
		asserts.True(ok)
		asserts.Equal("http://prices.local/prices.json", httpFetcher.URL)
		asserts.Equal(3*time.Second, httpFetcher.Client.Timeout)
	})

	t.Run("MySQL", func(t *testing.T) {
		asserts := require.New(t)
		v := viper.New()
		v.Set("fetcher", "MySQL")
		v.Set("fetchers.mysql.user", "currency")
		v.Set("fetchers.mysql.password", "currency")
		v.Set("fetchers.mysql.addr", "localhost:3306")
		v.Set("fetchers.mysql.db", "currencydb")
		v.Set("fetchers.mysql.table", "prices")

		// sql.Open does not dial, so no server is needed here
		fetcher, closeFn, err := newFetcher(ctx, v)

		asserts.NoError(err)
		asserts.IsType(fetchers.MySQLFetcher{}, fetcher)
		asserts.NoError(closeFn())
	})

	t.Run("MySQL_FromEnv", func(t *testing.T) {
		asserts := require.New(t)
		t.Setenv("CURRENCY_SWAP_FETCHERS_MYSQL_USER", "envuser")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MYSQL_PASSWORD", "fromenv")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MYSQL_ADDR", "db:3306")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MYSQL_DB", "envdb")
		v := newEnvViper()
		v.Set("fetchers.mysql.user", "currency")

		// explicit values still win over the environment
		asserts.Equal("currency:fromenv@tcp(db:3306)/envdb?parseTime=true", mysqlDSN(v))
	})

	t.Run("MongoDB_FromEnv", func(t *testing.T) {
		asserts := require.New(t)
		t.Setenv("CURRENCY_SWAP_FETCHER", "mongo")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MONGODB_URI", "mongodb://localhost:27017")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MONGODB_DATABASE", "currencydb")
		t.Setenv("CURRENCY_SWAP_FETCHERS_MONGODB_COLLECTION", "prices")

		// mongo.Connect does not wait for a server
		fetcher, closeFn, err := newFetcher(ctx, newEnvViper())

		asserts.NoError(err)
		mongoFetcher, ok := fetcher.(fetchers.MongoFetcher)
		asserts.True(ok)
		asserts.Equal("prices", mongoFetcher.Collection.Name())
		asserts.Equal("currencydb", mongoFetcher.Collection.Database().Name())
		asserts.NoError(closeFn())
	})

	t.Run("InvalidProvider", func(t *testing.T) {
		asserts := require.New(t)
		v := viper.New()
		v.Set("fetcher", "redis")

		fetcher, _, err := newFetcher(ctx, v)

		asserts.Nil(fetcher)
		asserts.EqualError(err, "value redis is not valid Provider")
	})
}
