package pricefeed

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/models"
)

// mockPriceClient implements LatestPriceClient for testing.
type mockPriceClient struct {
	latestPriceFn func(ctx context.Context, token string) (*models.GoldPrice, error)
}

func (m *mockPriceClient) LatestPrice(ctx context.Context, token string) (*models.GoldPrice, error) {
	return m.latestPriceFn(ctx, token)
}

func TestStatic(t *testing.T) {
	q, ok, err := NewStatic(7200).CurrentPrice(context.Background())
	if err != nil || !ok || q.PricePerUnit != 7200 {
		t.Errorf("expected 7200, got %+v ok=%v err=%v", q, ok, err)
	}

	q, ok, err = NewStatic(0).CurrentPrice(context.Background())
	if err != nil || !ok || q.PricePerUnit != 0 {
		t.Errorf("zero is a valid price, got %+v ok=%v err=%v", q, ok, err)
	}

	if _, ok, _ := NewStatic(-1).CurrentPrice(context.Background()); ok {
		t.Error("negative static price should report no price")
	}
}

func TestRemote(t *testing.T) {
	recorded := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		api := &mockPriceClient{latestPriceFn: func(_ context.Context, token string) (*models.GoldPrice, error) {
			if token != "tok" {
				t.Errorf("expected token to be passed through, got %q", token)
			}
			return &models.GoldPrice{PricePerGram: 7350, Source: "pipeline", RecordedAt: recorded}, nil
		}}
		q, ok, err := NewRemote(api, "tok", 0).CurrentPrice(context.Background())
		if err != nil || !ok {
			t.Fatalf("expected a price, got ok=%v err=%v", ok, err)
		}
		if q.PricePerUnit != 7350 || q.Source != "pipeline" || !q.RecordedAt.Equal(recorded) {
			t.Errorf("unexpected quote %+v", q)
		}
	})

	t.Run("not_found_is_no_price", func(t *testing.T) {
		api := &mockPriceClient{latestPriceFn: func(context.Context, string) (*models.GoldPrice, error) {
			return nil, apperrors.ErrPriceNotFound
		}}
		_, ok, err := NewRemote(api, "", 0).CurrentPrice(context.Background())
		if ok || err != nil {
			t.Errorf("expected no price and no error, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("stalled_request_times_out", func(t *testing.T) {
		api := &mockPriceClient{latestPriceFn: func(ctx context.Context, _ string) (*models.GoldPrice, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}}

		done := make(chan error, 1)
		go func() {
			_, _, err := NewRemote(api, "tok", 20*time.Millisecond).CurrentPrice(context.Background())
			done <- err
		}()

		select {
		case err := <-done:
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected deadline exceeded, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("remote feed did not give up on a stalled request")
		}
	})
}

func TestChain(t *testing.T) {
	boom := errors.New("connection reset")
	failing := NewRemote(&mockPriceClient{latestPriceFn: func(context.Context, string) (*models.GoldPrice, error) {
		return nil, boom
	}}, "", 0)

	t.Run("first_answer_wins", func(t *testing.T) {
		q, ok, err := NewChain(failing, NewStatic(-1), NewStatic(6900), NewStatic(100)).CurrentPrice(context.Background())
		if err != nil || !ok || q.PricePerUnit != 6900 {
			t.Errorf("expected 6900, got %+v ok=%v err=%v", q, ok, err)
		}
	})

	t.Run("no_price_reports_failures", func(t *testing.T) {
		_, ok, err := NewChain(nil, failing, NewStatic(-1)).CurrentPrice(context.Background())
		if ok {
			t.Error("expected no price")
		}
		if !errors.Is(err, boom) {
			t.Errorf("expected joined error to carry the failure, got %v", err)
		}
	})

	t.Run("empty_chain", func(t *testing.T) {
		_, ok, err := NewChain().CurrentPrice(context.Background())
		if ok || err != nil {
			t.Errorf("expected no price and no error, got ok=%v err=%v", ok, err)
		}
	})
}
