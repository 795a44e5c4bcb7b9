package currency

import "context"

type (
	// Fetcher supplies the raw, possibly duplicated, price feed.
	Fetcher interface {
		Fetch(ctx context.Context) ([]Price, error)
	}

	// FetcherFunc adapts a function to the Fetcher interface.
	FetcherFunc func(ctx context.Context) ([]Price, error)
)

func (f FetcherFunc) Fetch(ctx context.Context) ([]Price, error) {
	return f(ctx)
}
