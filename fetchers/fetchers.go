package fetchers

import (
	"errors"
	"net/http"
	"time"
)

const (
	SwitcheoPricesURL  = "https://interview.switcheo.com/prices.json"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultMySQLTable  = "prices"
)

var (
	ErrClient           = errors.New("client error")
	ErrServer           = errors.New("server error")
	ErrUnknown          = errors.New("unknown error")
	ErrNoCollection     = errors.New("mongodb collection is not provided")
	ErrNoDatabase       = errors.New("sql database is not provided")
	ErrInvalidTableName = errors.New("invalid table name")
	ErrFetcherNotFound  = errors.New("fetcher is not found")
)

func handleHTTPStatusCodeError(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusOK:
		return nil
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}
