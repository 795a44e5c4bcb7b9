package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/currency-swap"
	"github.com/malusev998/currency-swap/fetchers"
)

func noopClose() error {
	return nil
}

// mysqlDSN reads every key on its own so environment overrides apply.
func mysqlDSN(v *viper.Viper) string {
	return fetchers.MySQLDSN(
		v.GetString("fetchers.mysql.user"),
		v.GetString("fetchers.mysql.password"),
		v.GetString("fetchers.mysql.addr"),
		v.GetString("fetchers.mysql.db"),
	)
}

func newMySQLFetcher(v *viper.Viper) (currency.Fetcher, func() error, error) {
	db, err := sql.Open("mysql", mysqlDSN(v))

	if err != nil {
		return nil, nil, fmt.Errorf("error while connecting to mysql: %w", err)
	}

	fetcher, err := fetchers.NewPriceFetcher(currency.MySQLProvider, fetchers.MySQLConfig{
		DB:        db,
		TableName: v.GetString("fetchers.mysql.table"),
	})

	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return fetcher, db.Close, nil
}

func newMongoFetcher(ctx context.Context, v *viper.Viper) (currency.Fetcher, func() error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(v.GetString("fetchers.mongodb.uri")))

	if err != nil {
		return nil, nil, fmt.Errorf("error while connecting to mongodb: %w", err)
	}

	fetcher, err := fetchers.NewPriceFetcher(currency.MongoDBProvider, fetchers.MongoDBConfig{
		Collection: client.Database(v.GetString("fetchers.mongodb.database")).Collection(v.GetString("fetchers.mongodb.collection")),
	})

	disconnect := func() error {
		return client.Disconnect(context.Background())
	}

	if err != nil {
		_ = disconnect()
		return nil, nil, err
	}

	return fetcher, disconnect, nil
}

func newFetcher(ctx context.Context, v *viper.Viper) (currency.Fetcher, func() error, error) {
	var provider currency.Provider

	if err := provider.UnmarshalText([]byte(v.GetString("fetcher"))); err != nil {
		return nil, nil, err
	}

	switch provider {
	case currency.MySQLProvider:
		return newMySQLFetcher(v)
	case currency.MongoDBProvider:
		return newMongoFetcher(ctx, v)
	}

	fetcher, err := fetchers.NewPriceFetcher(provider, fetchers.HTTPConfig{
		URL:     v.GetString("fetchers.http.url"),
		Timeout: v.GetDuration("fetchers.http.timeout"),
	})

	if err != nil {
		return nil, nil, err
	}

	return fetcher, noopClose, nil
}
