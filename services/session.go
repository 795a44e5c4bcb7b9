package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotSubmittable = errors.New("swap is not submittable")

type (
	// Swap is the finalized pair reported on submission.
	Swap struct {
		ID          uuid.UUID
		From        CurrencyAmount
		To          CurrencyAmount
		Rate        string
		SubmittedAt time.Time
	}

	CompletionHandler interface {
		Complete(ctx context.Context, swap Swap) error
	}

	CompletionHandlerFunc func(ctx context.Context, swap Swap) error

	// Session is what a form talks to. Each call is handled as one atomic step.
	Session struct {
		feed   *PriceFeed
		logger *zap.Logger

		mu           sync.Mutex
		synchronizer *Synchronizer
	}
)

func (f CompletionHandlerFunc) Complete(ctx context.Context, swap Swap) error {
	return f(ctx, swap)
}

func NewSession(feed *PriceFeed, initial LinkedPair, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		feed:         feed,
		logger:       logger,
		synchronizer: NewSynchronizer(feed.Table(), initial),
	}
}

// Refresh refreshes the feed and re-derives the pair when the new table was
// applied.
func (s *Session) Refresh(ctx context.Context) error {
	applied, err := s.feed.Refresh(ctx)

	if !applied || err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.synchronizer.OnPricesChanged(s.feed.Table())

	return nil
}

func (s *Session) Pair() LinkedPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.Pair()
}

func (s *Session) Currencies() []string {
	return s.feed.Table().Currencies()
}

func (s *Session) ExchangeRate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.ExchangeRate()
}

func (s *Session) ErrorMessage() string {
	return s.feed.ErrorMessage()
}

// CanSubmit is closed while the feed is in an error state.
func (s *Session) CanSubmit() bool {
	if s.feed.Err() != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.CanSubmit()
}

func (s *Session) OnAmountEdited(side Side, amount Amount) LinkedPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.OnAmountEdited(side, amount)
}

func (s *Session) OnCurrencyChanged(side Side, code string) LinkedPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.OnCurrencyChanged(side, code)
}

func (s *Session) OnSwap() LinkedPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.synchronizer.OnSwap()
}

// Submit reports the finalized pair to handler. It has no other effect.
func (s *Session) Submit(ctx context.Context, handler CompletionHandler) (Swap, error) {
	if s.feed.Err() != nil {
		return Swap{}, ErrNotSubmittable
	}

	s.mu.Lock()
	if !s.synchronizer.CanSubmit() {
		s.mu.Unlock()
		return Swap{}, ErrNotSubmittable
	}
	pair := s.synchronizer.Pair()
	rate := s.synchronizer.ExchangeRate()
	s.mu.Unlock()

	swap := Swap{
		ID:          uuid.New(),
		From:        pair.Primary,
		To:          pair.Secondary,
		Rate:        rate,
		SubmittedAt: time.Now(),
	}

	if handler != nil {
		if err := handler.Complete(ctx, swap); err != nil {
			return Swap{}, err
		}
	}

	s.logger.Info("swap submitted",
		zap.String("id", swap.ID.String()),
		zap.String("from", swap.From.Currency),
		zap.Stringer("from_amount", swap.From.Amount),
		zap.String("to", swap.To.Currency),
		zap.Stringer("to_amount", swap.To.Amount),
	)

	return swap, nil
}
