package portfolio

import (
	"github.com/shopspring/decimal"

	"goldbook/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Holding is the valuation of one position. Money fields are cents.
type Holding struct {
	AssetType            string  `json:"asset_type"`
	Weight               float64 `json:"weight"`
	AvgCostPerUnit       float64 `json:"avg_cost_per_unit"`
	CostBasis            int64   `json:"cost_basis"`
	CurrentValue         int64   `json:"current_value"`
	ProfitLoss           int64   `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	Invested             int64   `json:"invested"`
	RealizedProfit       int64   `json:"realized_profit"`
	Shortfalls           int     `json:"shortfalls,omitempty"`
}

// Summary is the portfolio-level valuation. Money fields are cents.
type Summary struct {
	Holdings             []Holding `json:"holdings"`
	TotalWeight          float64   `json:"total_weight"`
	TotalCostBasis       int64     `json:"total_cost_basis"`
	TotalInvested        int64     `json:"total_invested"`
	CurrentValue         int64     `json:"current_value"`
	ProfitLoss           int64     `json:"profit_loss"`
	ProfitLossPercentage float64   `json:"profit_loss_percentage"`
	RealizedProfit       int64     `json:"realized_profit"`
	CurrentPricePerUnit  int64     `json:"current_price_per_unit"`
	// PriceAvailable is false when no spot price could be found and the
	// summary was valued at zero. Value leaves it to the caller.
	PriceAvailable bool `json:"price_available"`
}

// Value prices every position at pricePerUnit (cents per gram). A negative
// price is treated as zero. Holdings come out sorted by asset type.
func Value(agg *Aggregation, pricePerUnit int64) Summary {
	if pricePerUnit < 0 {
		pricePerUnit = 0
	}
	price := decimal.NewFromInt(pricePerUnit)

	summary := Summary{
		Holdings:            []Holding{},
		CurrentPricePerUnit: pricePerUnit,
	}
	if agg == nil {
		return summary
	}

	totalWeight := decimal.Zero
	for _, key := range agg.AssetTypes() {
		pos := agg.Positions[key]

		currentValue := cents(pos.Weight.Mul(price))
		costBasis := cents(pos.Weight.Mul(pos.AvgCostPerUnit))
		pl := currentValue - costBasis

		summary.Holdings = append(summary.Holdings, Holding{
			AssetType:            key,
			Weight:               grams(pos.Weight),
			AvgCostPerUnit:       pos.AvgCostPerUnit.Round(2).InexactFloat64(),
			CostBasis:            costBasis,
			CurrentValue:         currentValue,
			ProfitLoss:           pl,
			ProfitLossPercentage: percentage(pl, costBasis),
			Invested:             cents(pos.Invested),
			RealizedProfit:       cents(pos.Realized),
			Shortfalls:           pos.Shortfalls,
		})

		totalWeight = totalWeight.Add(pos.Weight)
		summary.TotalCostBasis += costBasis
		summary.TotalInvested += cents(pos.Invested)
		summary.CurrentValue += currentValue
		summary.ProfitLoss += pl
		summary.RealizedProfit += cents(pos.Realized)
	}

	summary.TotalWeight = grams(totalWeight)
	summary.ProfitLossPercentage = percentage(summary.ProfitLoss, summary.TotalCostBasis)
	return summary
}

// percentage is pl / basis × 100 to two decimals, or zero without a basis.
func percentage(pl, basis int64) float64 {
	if basis <= 0 {
		return 0
	}
	return decimal.NewFromInt(pl).Mul(hundred).Div(decimal.NewFromInt(basis)).Round(2).InexactFloat64()
}

func cents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func grams(d decimal.Decimal) float64 {
	return d.Round(models.WeightPrecision).InexactFloat64()
}
