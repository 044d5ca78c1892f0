package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		name     string
		currency string
		amount   string
		want     string
	}{
		{"zero", "KES", "0", "KES 0.00"},
		{"small", "KES", "5", "KES 5.00"},
		{"cents", "KES", "12.5", "KES 12.50"},
		{"thousands", "KES", "12345.67", "KES 12,345.67"},
		{"millions", "KES", "1234567.89", "KES 1,234,567.89"},
		{"exact group", "KES", "123456", "KES 123,456.00"},
		{"negative", "KES", "-1500", "KES -1,500.00"},
		{"other currency", "USD", "999.99", "USD 999.99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			if err != nil {
				t.Fatalf("bad amount %q: %v", tc.amount, err)
			}
			if got := FormatMoney(tc.currency, amount); got != tc.want {
				t.Errorf("FormatMoney(%q, %s) = %q, want %q", tc.currency, tc.amount, got, tc.want)
			}
		})
	}
}
