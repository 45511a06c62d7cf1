// Package pricefeed supplies the current gold spot price used to value
// positions.
package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/logger"
	"goldbook/internal/models"
)

// Quote is a spot price for one gram, in cents.
type Quote struct {
	PricePerUnit int64
	Source       string
	RecordedAt   time.Time
}

// Feed returns the current price. ok is false when the feed has no price;
// err is reserved for a feed that could not be asked.
type Feed interface {
	Name() string
	CurrentPrice(ctx context.Context) (q Quote, ok bool, err error)
}

// Static always answers with a configured price. Zero is a valid price; a
// negative one means no price.
type Static struct {
	price int64
}

// NewStatic creates a feed for a fixed price in cents per gram.
func NewStatic(pricePerUnit int64) *Static {
	return &Static{price: pricePerUnit}
}

// Name returns the feed's display name.
func (s *Static) Name() string { return "static" }

// CurrentPrice returns the configured price.
func (s *Static) CurrentPrice(_ context.Context) (Quote, bool, error) {
	if s.price < 0 {
		return Quote{}, false, nil
	}
	return Quote{PricePerUnit: s.price, Source: s.Name()}, true, nil
}

// LatestPriceClient defines the API call needed by Remote.
type LatestPriceClient interface {
	LatestPrice(ctx context.Context, token string) (*models.GoldPrice, error)
}

// Remote reads the latest price recorded on a goldbook API server.
type Remote struct {
	api     LatestPriceClient
	token   string
	timeout time.Duration
}

// NewRemote creates a feed over api, authenticating with token. A positive
// timeout bounds each request; a request that runs out counts as failed.
func NewRemote(api LatestPriceClient, token string, timeout time.Duration) *Remote {
	return &Remote{api: api, token: token, timeout: timeout}
}

// Name returns the feed's display name.
func (r *Remote) Name() string { return "remote" }

// CurrentPrice fetches the latest recorded price.
func (r *Remote) CurrentPrice(ctx context.Context) (Quote, bool, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	p, err := r.api.LatestPrice(ctx, r.token)
	if errors.Is(err, apperrors.ErrPriceNotFound) {
		return Quote{}, false, nil
	}
	if err != nil {
		return Quote{}, false, err
	}
	return Quote{PricePerUnit: p.PricePerGram, Source: p.Source, RecordedAt: p.RecordedAt}, true, nil
}

// Chain asks each feed in turn and returns the first price found.
type Chain struct {
	feeds []Feed
}

// NewChain creates a Chain. Nil feeds are ignored.
func NewChain(feeds ...Feed) *Chain {
	c := &Chain{}
	for _, f := range feeds {
		if f != nil {
			c.feeds = append(c.feeds, f)
		}
	}
	return c
}

// Name returns the feed's display name.
func (c *Chain) Name() string { return "chain" }

// CurrentPrice returns the first available quote. Failing feeds are logged
// and skipped. If no feed has a price, their errors are joined.
func (c *Chain) CurrentPrice(ctx context.Context) (Quote, bool, error) {
	var errs []error
	for _, f := range c.feeds {
		q, ok, err := f.CurrentPrice(ctx)
		if err != nil {
			logger.Named("pricefeed").Warnw("price feed failed", "feed", f.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s feed: %w", f.Name(), err))
			continue
		}
		if ok {
			return q, true, nil
		}
	}
	return Quote{}, false, errors.Join(errs...)
}
