package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	apperrors "goldbook/internal/errors"
)

// formatAmount renders minor units in the currency's own notation.
func formatAmount(minor int64, currency string) string {
	if money.GetCurrency(currency) == nil {
		return fmt.Sprintf("%d %s", minor, currency)
	}
	return money.New(minor, currency).Display()
}

// parseAmount reads a major-unit amount such as "62.50" into minor units of
// currency, rejecting more decimals than the currency has.
func parseAmount(s, currency string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	fraction := 2
	if c := money.GetCurrency(currency); c != nil {
		fraction = c.Fraction
	}
	minor := d.Shift(int32(fraction))
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, fraction)
	}
	return minor.IntPart(), nil
}

// formatPercent renders a percentage with an explicit sign.
func formatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}

// describeError turns service errors into one line for the terminal.
func describeError(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Field != "" {
			return fmt.Sprintf("%s: %s", appErr.Field, appErr.Message)
		}
		return appErr.Message
	}
	return err.Error()
}
