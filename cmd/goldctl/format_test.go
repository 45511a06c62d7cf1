package main

import (
	"fmt"
	"testing"

	apperrors "goldbook/internal/errors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		currency string
		want     int64
		wantErr  bool
	}{
		{name: "whole", in: "60", currency: "USD", want: 6000},
		{name: "cents", in: "62.5", currency: "USD", want: 6250},
		{name: "zero_decimal_currency", in: "7000", currency: "JPY", want: 7000},
		{name: "too_precise", in: "1.005", currency: "USD", wantErr: true},
		{name: "too_precise_jpy", in: "1.5", currency: "JPY", wantErr: true},
		{name: "garbage", in: "abc", currency: "USD", wantErr: true},
		{name: "empty", in: "", currency: "USD", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.in, tt.currency)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount(6300000, "USD"); got != "$63,000.00" {
		t.Errorf("unexpected USD rendering %q", got)
	}
	if got := formatAmount(-900, "USD"); got != "-$9.00" {
		t.Errorf("unexpected negative rendering %q", got)
	}
	if got := formatAmount(12, "XXX-NOPE"); got != "12 XXX-NOPE" {
		t.Errorf("unexpected fallback rendering %q", got)
	}
}

func TestDescribeError(t *testing.T) {
	err := apperrors.WithField(apperrors.ErrValidation, "weight", "weight must be greater than zero")
	if got := describeError(err); got != "weight: weight must be greater than zero" {
		t.Errorf("unexpected description %q", got)
	}
	if got := describeError(fmt.Errorf("boom")); got != "boom" {
		t.Errorf("unexpected description %q", got)
	}
	if got := formatPercent(14.29); got != "+14.29%" {
		t.Errorf("unexpected percent %q", got)
	}
}
