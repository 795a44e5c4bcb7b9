package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/malusev998/currency-swap"
)

const unknownFetchErrorMessage = "An unknown error occurred while fetching prices."

type (
	// PriceFeed owns the current PriceTable. Every refresh takes a generation
	// number when it starts; a result is applied only if no later generation
	// has been applied already, so slow responses never overwrite newer ones.
	PriceFeed struct {
		fetcher currency.Fetcher
		logger  *zap.Logger
		metrics *FeedMetrics

		generation atomic.Uint64

		mu      sync.RWMutex
		applied uint64
		table   PriceTable
		err     error
	}

	RefreshResult struct {
		Applied bool
		Err     error
	}
)

func NewPriceFeed(fetcher currency.Fetcher, logger *zap.Logger, metrics *FeedMetrics) *PriceFeed {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PriceFeed{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
		table:   BuildPriceTable(nil),
	}
}

// Refresh fetches the feed and, unless a newer refresh finished first, replaces
// the table. A failed fetch keeps the previous table. The returned error is the
// fetch error whether or not it was applied.
func (f *PriceFeed) Refresh(ctx context.Context) (bool, error) {
	gen := f.generation.Add(1)
	prices, err := f.fetcher.Fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen < f.applied {
		f.metrics.observe(refreshStale)
		f.logger.Debug("discarding stale price feed response",
			zap.Uint64("generation", gen),
			zap.Uint64("applied", f.applied),
			zap.Error(err),
		)

		return false, err
	}

	f.applied = gen

	if err != nil {
		f.err = err
		f.metrics.observe(refreshFailed)
		f.logger.Warn("price feed refresh failed",
			zap.Uint64("generation", gen),
			zap.Error(err),
		)

		return true, err
	}

	f.table = BuildPriceTable(prices)
	f.err = nil
	f.metrics.observe(refreshApplied)
	f.metrics.setCurrencies(f.table.Len())
	f.logger.Info("price feed refreshed",
		zap.Uint64("generation", gen),
		zap.Int("records", len(prices)),
		zap.Int("currencies", f.table.Len()),
	)

	return true, nil
}

// RefreshAsync runs Refresh on its own goroutine. The channel receives exactly
// one result and is then closed.
func (f *PriceFeed) RefreshAsync(ctx context.Context) <-chan RefreshResult {
	ch := make(chan RefreshResult, 1)

	go func() {
		defer close(ch)
		applied, err := f.Refresh(ctx)
		ch <- RefreshResult{Applied: applied, Err: err}
	}()

	return ch
}

func (f *PriceFeed) Table() PriceTable {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.table
}

func (f *PriceFeed) Lookup(code string) (float64, bool) {
	return f.Table().Lookup(code)
}

func (f *PriceFeed) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.err
}

func (f *PriceFeed) ErrorMessage() string {
	return FetchErrorMessage(f.Err())
}

// FetchErrorMessage turns a fetch error into the text shown to the user.
func FetchErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if err.Error() == "" {
		return unknownFetchErrorMessage
	}

	return fmt.Sprintf("Failed to fetch prices: %s", err.Error())
}
