package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/logger"
	"goldbook/internal/models"
	"goldbook/internal/portfolio"
)

// DefaultRemoteTimeout bounds each remote call when no timeout is configured.
const DefaultRemoteTimeout = 5 * time.Second

// Gateway is the single entry point for ledger persistence.
type Gateway struct {
	mode    Mode
	remote  Store
	local   Store
	timeout time.Duration
	log     *zap.SugaredLogger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithRemoteTimeout bounds every remote call.
func WithRemoteTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGateway creates a Gateway for mode. Stores the mode does not use may be nil.
func NewGateway(mode Mode, remote, local Store, opts ...Option) (*Gateway, error) {
	if mode != ModeRemote && local == nil {
		return nil, fmt.Errorf("storage mode %s requires a local store", mode)
	}
	if mode != ModeLocal && remote == nil {
		return nil, fmt.Errorf("storage mode %s requires a remote store", mode)
	}

	g := &Gateway{
		mode:    mode,
		remote:  remote,
		local:   local,
		timeout: DefaultRemoteTimeout,
		log:     logger.Named("ledger"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Append stores tx and returns the identifier it was given. A record is
// written to exactly one store.
func (g *Gateway) Append(ctx context.Context, sess identity.Session, tx models.Transaction) (*Receipt, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	res, fellBack, err := dispatch(ctx, g, "append", func(ctx context.Context, s Store) (string, error) {
		return s.Append(ctx, sess, tx)
	})
	if err != nil {
		return nil, err
	}

	g.log.Infow("transaction appended",
		"user_id", sess.UserID,
		"transaction_id", res.Value,
		"source", res.Source,
		"fallback", fellBack != "",
	)
	return &Receipt{ID: res.Value, Source: res.Source, Fallback: fellBack != ""}, nil
}

// ListByUser returns every readable transaction owned by the session user.
// Nothing is cached: each call reads the store again.
func (g *Gateway) ListByUser(ctx context.Context, sess identity.Session) (*Listing, error) {
	if !sess.Valid() {
		return nil, apperrors.ErrUnauthorized
	}

	res, fellBack, err := dispatch(ctx, g, "list", func(ctx context.Context, s Store) (*Batch, error) {
		return s.ListByUser(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	batch := res.Value
	if batch == nil {
		batch = &Batch{}
	}
	txs := make([]models.Transaction, 0, len(batch.Transactions))
	for _, tx := range batch.Transactions {
		// A store that hands back another user's record is treated as corrupt.
		if tx.UserID != sess.UserID {
			batch.Corrupt++
			continue
		}
		txs = append(txs, tx)
	}

	if batch.Corrupt > 0 {
		g.log.Warnw("skipped unreadable transactions",
			"code", apperrors.ErrStoreCorrupt.Code,
			"user_id", sess.UserID,
			"source", res.Source,
			"corrupt", batch.Corrupt,
		)
	}

	return &Listing{
		Source:         res.Source,
		Transactions:   portfolio.Sorted(txs),
		Corrupt:        batch.Corrupt,
		Fallback:       fellBack != "",
		FallbackReason: fellBack,
	}, nil
}

// dispatch runs fn against the stores the mode calls for. It returns the
// first successful Result and, when the local store answered in place of
// the remote one, the reason the remote call failed.
func dispatch[T any](ctx context.Context, g *Gateway, op string, fn func(context.Context, Store) (T, error)) (Result[T], string, error) {
	switch g.mode {
	case ModeLocal:
		res := attempt(ctx, g.local, 0, fn)
		if res.OK() {
			return res, "", nil
		}
		return res, "", unavailable(res.Err)

	case ModeRemote:
		res := attempt(ctx, g.remote, g.timeout, fn)
		if res.OK() {
			return res, "", nil
		}
		g.warnRemote(op, res.Err)
		return res, "", unavailable(res.Err)
	}

	remote := attempt(ctx, g.remote, g.timeout, fn)
	if remote.OK() {
		return remote, "", nil
	}
	if permanent(remote.Err) || ctx.Err() != nil {
		return remote, "", unavailable(remote.Err)
	}
	g.warnRemote(op, remote.Err)

	local := attempt(ctx, g.local, 0, fn)
	if local.OK() {
		g.log.Warnw("served from local store",
			"code", apperrors.ErrStoreUnavailable.Code,
			"operation", op,
			"reason", remote.Err.Error(),
		)
		return local, remote.Err.Error(), nil
	}
	return local, "", unavailable(remote.Err, local.Err)
}

func attempt[T any](ctx context.Context, s Store, timeout time.Duration, fn func(context.Context, Store) (T, error)) Result[T] {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	v, err := fn(ctx, s)
	if err != nil {
		return Result[T]{Source: s.Source(), Err: fmt.Errorf("%s store: %w", s.Source(), err)}
	}
	return Result[T]{Source: s.Source(), Value: v}
}

func (g *Gateway) warnRemote(op string, err error) {
	g.log.Warnw("remote store failed",
		"code", apperrors.ErrStoreUnavailable.Code,
		"operation", op,
		"error", err.Error(),
	)
	if op == "append" && errors.Is(err, context.DeadlineExceeded) {
		g.log.Warnw("remote append timed out and may still be committed remotely; a retry can duplicate it")
	}
}

// permanent reports errors that another store would reproduce, so there is
// no point falling back.
func permanent(err error) bool {
	return errors.Is(err, apperrors.ErrValidation)
}

// unavailable returns the caller-facing error for failed store calls.
// Validation failures pass through untouched.
func unavailable(errs ...error) error {
	for _, err := range errs {
		var appErr *apperrors.AppError
		if permanent(err) && errors.As(err, &appErr) {
			return appErr
		}
	}
	return apperrors.Wrap(apperrors.ErrStoreUnavailable, errors.Join(errs...))
}
