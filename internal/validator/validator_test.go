package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type tradeRequest struct {
	Type string `json:"type" validate:"required,trade_type"`
	Date string `json:"date" validate:"required,calendar_date"`
	Code string `form:"currency" validate:"omitempty,iso4217"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("trade_type", validateTradeType)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate()

	tests := []struct {
		name    string
		req     tradeRequest
		wantErr string
	}{
		{name: "valid", req: tradeRequest{Type: "buy", Date: "2024-05-01", Code: "USD"}},
		{name: "valid_rfc3339", req: tradeRequest{Type: "SELL", Date: "2024-05-01T10:00:00Z"}},
		{name: "bad_type", req: tradeRequest{Type: "gift", Date: "2024-05-01"}, wantErr: "type"},
		{name: "bad_date", req: tradeRequest{Type: "buy", Date: "05/01/2024"}, wantErr: "date"},
		{name: "bad_currency", req: tradeRequest{Type: "buy", Date: "2024-05-01", Code: "XXX"}, wantErr: "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verrs, ok := err.(validator.ValidationErrors)
			if !ok || len(verrs) == 0 {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verrs[0].Field() != tt.wantErr {
				t.Errorf("expected field %q, got %q", tt.wantErr, verrs[0].Field())
			}
		})
	}
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Errorf("unexpected date %v", d)
	}
	if _, err := ParseCalendarDate("2023-02-29"); err == nil {
		t.Error("expected error for impossible date")
	}
}

func TestIsCurrency(t *testing.T) {
	if !IsCurrency("MYR") || IsCurrency("usd") {
		t.Error("expected exact ISO 4217 matching")
	}
}
