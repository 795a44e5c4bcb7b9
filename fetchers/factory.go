package fetchers

import (
	"database/sql"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/malusev998/currency-swap"
)

type (
	HTTPConfig struct {
		URL     string
		Timeout time.Duration
	}
	MySQLConfig struct {
		DB        *sql.DB
		TableName string
	}
	MongoDBConfig struct {
		Collection *mongo.Collection
	}
)

func NewPriceFetcher(provider currency.Provider, config interface{}) (currency.Fetcher, error) {
	switch provider {
	case currency.HTTPProvider:
		c, _ := config.(HTTPConfig)
		timeout := c.Timeout

		if timeout <= 0 {
			timeout = DefaultHTTPTimeout
		}

		return HTTPFetcher{
			URL:    c.URL,
			Client: &http.Client{Timeout: timeout},
		}, nil
	case currency.MySQLProvider:
		c, _ := config.(MySQLConfig)

		f, err := NewMySQLFetcher(c.DB, c.TableName)

		if err != nil {
			return nil, err
		}

		return f, nil
	case currency.MongoDBProvider:
		c, _ := config.(MongoDBConfig)

		if c.Collection == nil {
			return nil, ErrNoCollection
		}

		return MongoFetcher{Collection: c.Collection}, nil
	}

	return nil, ErrFetcherNotFound
}
