package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/portfolio"
	"goldbook/internal/services"
)

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	setup := func(svc services.LedgerServicer) *gin.Engine {
		r := gin.New()
		r.GET("/portfolio", injectUserID("user-1"), NewPortfolioHandler(svc).GetPortfolio)
		return r
	}

	t.Run("returns the valued portfolio", func(t *testing.T) {
		svc := &mockLedgerService{
			getPortfolioFn: func(_ context.Context, sess identity.Session) (*services.PortfolioReport, error) {
				if sess.UserID != "user-1" {
					t.Errorf("unexpected user %q", sess.UserID)
				}
				return &services.PortfolioReport{
					Summary: portfolio.Summary{
						Holdings:             []portfolio.Holding{{AssetType: "Gold Bar", Weight: 9, CostBasis: 63000, CurrentValue: 72000}},
						TotalWeight:          9,
						TotalCostBasis:       63000,
						CurrentValue:         72000,
						ProfitLoss:           9000,
						ProfitLossPercentage: 14.29,
						PriceAvailable:       true,
					},
					Currency: "USD",
					Source:   ledger.SourceRemote,
					Fallback: false,
					Warnings: []string{},
				}, nil
			},
		}

		rec := doRequest(setup(svc), "GET", "/portfolio", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["profit_loss_percentage"] != 14.29 || result["currency"] != "USD" || result["source"] != "remote" {
			t.Errorf("unexpected body %v", result)
		}
		if result["price_available"] != true {
			t.Error("expected price_available true")
		}
		if holdings := result["holdings"].([]interface{}); len(holdings) != 1 {
			t.Errorf("expected one holding, got %d", len(holdings))
		}
	})

	t.Run("returns 503 when every store fails", func(t *testing.T) {
		svc := &mockLedgerService{
			getPortfolioFn: func(context.Context, identity.Session) (*services.PortfolioReport, error) {
				return nil, apperrors.ErrStoreUnavailable
			},
		}

		rec := doRequest(setup(svc), "GET", "/portfolio", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STORE_UNAVAILABLE")
	})
}
