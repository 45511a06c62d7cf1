// Package portfolio folds a user's gold transactions into per-asset-type
// positions and values them against a spot price.
//
// Everything here is a pure function of its inputs: no I/O, no clocks, no
// shared state. Money is carried in cents as decimal.Decimal so that long
// histories do not accumulate floating point drift; gram weights are
// normalized to three decimals on the way in.
package portfolio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "goldbook/internal/errors"
	"goldbook/internal/models"
)

// SellPolicy decides what happens when a sell exceeds the weight held.
type SellPolicy int

const (
	// SellPolicyReject fails aggregation with INSUFFICIENT_POSITION.
	SellPolicyReject SellPolicy = iota
	// SellPolicyAllowNegative lets the position go negative and records a
	// Shortfall. The uncovered part of the sale carries no cost basis.
	SellPolicyAllowNegative
)

// String returns the configuration spelling of the policy.
func (p SellPolicy) String() string {
	if p == SellPolicyAllowNegative {
		return "allow_negative"
	}
	return "reject"
}

// ParseSellPolicy parses "reject" or "allow_negative".
func ParseSellPolicy(s string) (SellPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return SellPolicyReject, nil
	case "allow_negative", "allow-negative":
		return SellPolicyAllowNegative, nil
	}
	return SellPolicyReject, fmt.Errorf("unknown sell policy %q: must be reject or allow_negative", s)
}

// Position is the running state of one asset type.
type Position struct {
	AssetType string

	// Weight is the net grams held. Only negative under SellPolicyAllowNegative.
	Weight decimal.Decimal
	// TotalCost is the cost basis, in cents, attributed to Weight.
	TotalCost decimal.Decimal
	// AvgCostPerUnit is TotalCost / Weight, or zero when nothing is held.
	AvgCostPerUnit decimal.Decimal

	Invested   decimal.Decimal // sum of buy cost, in cents
	Proceeds   decimal.Decimal // sum of sale proceeds, in cents
	Realized   decimal.Decimal // proceeds minus the basis removed by sells
	Buys       int
	Sells      int
	Shortfalls int
}

// Shortfall describes a sell that exceeded the weight held at its date.
type Shortfall struct {
	TransactionID string
	AssetType     string
	Held          decimal.Decimal
	Requested     decimal.Decimal
}

// Aggregation is the result of folding a transaction stream.
type Aggregation struct {
	Positions  map[string]Position
	Shortfalls []Shortfall
}

// AssetTypes returns the aggregated asset types in sorted order.
func (a *Aggregation) AssetTypes() []string {
	keys := make([]string, 0, len(a.Positions))
	for k := range a.Positions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sorted returns a copy of txs ordered by date, then ID.
func Sorted(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(&out[j]) })
	return out
}

// Aggregate folds txs into positions keyed by asset type. Input order is
// ignored: records are replayed by ascending date, same-day records by ID.
func Aggregate(txs []models.Transaction, policy SellPolicy) (*Aggregation, error) {
	agg := &Aggregation{Positions: make(map[string]Position)}

	for _, tx := range Sorted(txs) {
		key := strings.TrimSpace(tx.AssetType)
		pos, ok := agg.Positions[key]
		if !ok {
			pos = Position{AssetType: key}
		}

		weight := decimal.NewFromFloat(tx.Weight).Round(models.WeightPrecision)
		price := decimal.NewFromInt(tx.PricePerUnit)

		switch tx.Type {
		case models.TransactionTypeBuy:
			cost := weight.Mul(price)
			pos.Weight = pos.Weight.Add(weight)
			pos.TotalCost = pos.TotalCost.Add(cost)
			pos.Invested = pos.Invested.Add(cost)
			pos.Buys++

		case models.TransactionTypeSell:
			held := pos.Weight
			if !held.IsPositive() || weight.GreaterThan(held) {
				if policy != SellPolicyAllowNegative {
					return nil, insufficient(tx, held, weight)
				}
				agg.Shortfalls = append(agg.Shortfalls, Shortfall{
					TransactionID: tx.ID,
					AssetType:     key,
					Held:          held,
					Requested:     weight,
				})
				pos.Shortfalls++
			}
			sell(&pos, weight, price)

		default:
			return nil, apperrors.WithField(apperrors.ErrValidation, "type",
				fmt.Sprintf("transaction %s has unknown type %q", tx.ID, tx.Type))
		}

		agg.Positions[key] = pos
	}

	for key, pos := range agg.Positions {
		if pos.Weight.IsPositive() {
			pos.AvgCostPerUnit = pos.TotalCost.Div(pos.Weight)
		} else {
			pos.TotalCost = decimal.Zero
			pos.AvgCostPerUnit = decimal.Zero
		}
		agg.Positions[key] = pos
	}

	return agg, nil
}

// sell removes weight from pos at its current average cost. Any part of
// the sale beyond the weight held is removed at zero basis.
func sell(pos *Position, weight, price decimal.Decimal) {
	held := pos.Weight
	var removed decimal.Decimal
	switch {
	case !held.IsPositive():
		removed = decimal.Zero
	case weight.GreaterThanOrEqual(held):
		// Closing out: take the whole basis so no rounding residue is left behind.
		removed = pos.TotalCost
	default:
		avg := pos.TotalCost.Div(held)
		removed = avg.Mul(weight)
	}

	proceeds := weight.Mul(price)
	pos.TotalCost = pos.TotalCost.Sub(removed)
	pos.Weight = held.Sub(weight)
	pos.Proceeds = pos.Proceeds.Add(proceeds)
	pos.Realized = pos.Realized.Add(proceeds.Sub(removed))
	pos.Sells++
}

func insufficient(tx models.Transaction, held, requested decimal.Decimal) error {
	return apperrors.WithField(apperrors.ErrInsufficientPosition, "weight",
		fmt.Sprintf("sell %s of %sg %s exceeds the %sg held", tx.ID, requested.String(), tx.AssetType, held.String()))
}
