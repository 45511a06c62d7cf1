package portfolio

import (
	"reflect"
	"testing"

	"goldbook/internal/models"
	"goldbook/internal/testutil"
)

func TestValue(t *testing.T) {
	scenario := []models.Transaction{
		buy("1", "Gold Bar", 10, 6000, "2024-03-01"),
		buy("2", "Gold Bar", 5, 9000, "2024-03-02"),
		sellTx("3", "Gold Bar", 6, 10000, "2024-03-03"),
	}

	t.Run("scenario_at_8000", func(t *testing.T) {
		agg, err := Aggregate(scenario, SellPolicyReject)
		testutil.AssertNoError(t, err)

		s := Value(agg, 8000)
		if s.TotalWeight != 9 {
			t.Errorf("expected weight 9, got %v", s.TotalWeight)
		}
		if s.TotalCostBasis != 63000 {
			t.Errorf("expected cost basis 63000, got %d", s.TotalCostBasis)
		}
		if s.CurrentValue != 72000 {
			t.Errorf("expected current value 72000, got %d", s.CurrentValue)
		}
		if s.ProfitLoss != 9000 {
			t.Errorf("expected profit 9000, got %d", s.ProfitLoss)
		}
		if s.ProfitLossPercentage != 14.29 {
			t.Errorf("expected 14.29%%, got %v", s.ProfitLossPercentage)
		}
		if s.RealizedProfit != 18000 {
			t.Errorf("expected realized 18000, got %d", s.RealizedProfit)
		}
		if s.TotalInvested != 105000 {
			t.Errorf("expected invested 105000, got %d", s.TotalInvested)
		}
		if len(s.Holdings) != 1 || s.Holdings[0].AvgCostPerUnit != 7000 {
			t.Errorf("unexpected holdings %+v", s.Holdings)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		txs := append([]models.Transaction{
			buy("4", "Gold Coin", 0.5, 7100, "2024-03-02"),
		}, scenario...)
		agg1, err := Aggregate(txs, SellPolicyReject)
		testutil.AssertNoError(t, err)
		agg2, err := Aggregate(txs, SellPolicyReject)
		testutil.AssertNoError(t, err)

		if a, b := Value(agg1, 8123), Value(agg2, 8123); !reflect.DeepEqual(a, b) {
			t.Errorf("expected identical summaries, got %+v and %+v", a, b)
		}
	})

	t.Run("holdings_sorted_by_asset_type", func(t *testing.T) {
		txs := []models.Transaction{
			buy("1", "Jewelry", 1, 5000, "2024-01-01"),
			buy("2", "Gold Bar", 1, 6000, "2024-01-01"),
			buy("3", "Gold Coin", 1, 7000, "2024-01-01"),
		}
		agg, err := Aggregate(txs, SellPolicyReject)
		testutil.AssertNoError(t, err)

		s := Value(agg, 6500)
		got := []string{s.Holdings[0].AssetType, s.Holdings[1].AssetType, s.Holdings[2].AssetType}
		want := []string{"Gold Bar", "Gold Coin", "Jewelry"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if s.TotalCostBasis != 18000 || s.CurrentValue != 19500 {
			t.Errorf("unexpected totals: basis %d value %d", s.TotalCostBasis, s.CurrentValue)
		}
	})

	t.Run("zero_cost_basis_has_zero_percentage", func(t *testing.T) {
		agg, err := Aggregate([]models.Transaction{buy("1", "Gift", 2, 0, "2024-01-01")}, SellPolicyReject)
		testutil.AssertNoError(t, err)

		s := Value(agg, 8000)
		if s.ProfitLoss != 16000 {
			t.Errorf("expected profit 16000, got %d", s.ProfitLoss)
		}
		if s.ProfitLossPercentage != 0 || s.Holdings[0].ProfitLossPercentage != 0 {
			t.Errorf("expected zero percentage, got %v", s.ProfitLossPercentage)
		}
	})

	t.Run("no_price_values_at_zero", func(t *testing.T) {
		agg, err := Aggregate(scenario, SellPolicyReject)
		testutil.AssertNoError(t, err)

		s := Value(agg, 0)
		if s.CurrentValue != 0 {
			t.Errorf("expected zero value, got %d", s.CurrentValue)
		}
		if s.ProfitLoss != -63000 {
			t.Errorf("expected loss of full basis, got %d", s.ProfitLoss)
		}
		if s.ProfitLossPercentage != -100 {
			t.Errorf("expected -100%%, got %v", s.ProfitLossPercentage)
		}
	})

	t.Run("negative_price_clamped", func(t *testing.T) {
		agg, err := Aggregate(scenario, SellPolicyReject)
		testutil.AssertNoError(t, err)
		if s := Value(agg, -5); s.CurrentPricePerUnit != 0 || s.CurrentValue != 0 {
			t.Errorf("expected clamped price, got %+v", s)
		}
	})

	t.Run("empty", func(t *testing.T) {
		agg, err := Aggregate(nil, SellPolicyReject)
		testutil.AssertNoError(t, err)

		s := Value(agg, 8000)
		if len(s.Holdings) != 0 || s.TotalWeight != 0 || s.ProfitLossPercentage != 0 {
			t.Errorf("expected empty summary, got %+v", s)
		}
		if s.Holdings == nil {
			t.Error("holdings should be an empty slice, not nil")
		}
		if nilSummary := Value(nil, 8000); nilSummary.Holdings == nil {
			t.Error("nil aggregation should still yield an empty holdings slice")
		}
	})

	t.Run("short_position_reports_shortfall", func(t *testing.T) {
		agg, err := Aggregate([]models.Transaction{sellTx("1", "Gold Bar", 1, 6000, "2024-01-01")}, SellPolicyAllowNegative)
		testutil.AssertNoError(t, err)

		s := Value(agg, 7000)
		h := s.Holdings[0]
		if h.Weight != -1 || h.CostBasis != 0 || h.CurrentValue != -7000 || h.Shortfalls != 1 {
			t.Errorf("unexpected short holding %+v", h)
		}
		if s.ProfitLossPercentage != 0 {
			t.Errorf("expected zero percentage without basis, got %v", s.ProfitLossPercentage)
		}
	})
}
