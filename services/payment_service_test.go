package services

import (
	"testing"

	"dukahub-backend/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		name       string
		amountPaid string
		amountDue  string
		want       string
	}{
		{"untouched", "0", "1000", models.PaymentStatusUnpaid},
		{"partially paid", "400", "600", models.PaymentStatusPartial},
		{"fully paid", "1000", "0", models.PaymentStatusPaid},
		{"negative due", "0", "-500", models.PaymentStatusPaid},
		{"zero total", "0", "0", models.PaymentStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePaymentStatus(dec(tc.amountPaid), dec(tc.amountDue))
			if got != tc.want {
				t.Errorf("DerivePaymentStatus(%s, %s) = %q, want %q",
					tc.amountPaid, tc.amountDue, got, tc.want)
			}
		})
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	cases := []struct {
		name      string
		method    string
		reference string
		wantErr   bool
	}{
		{"cash without reference", models.PaymentMethodCash, "", false},
		{"cash with reference", models.PaymentMethodCash, "RCPT-1", true},
		{"mpesa with reference", models.PaymentMethodMpesa, "QA12BC34", false},
		{"mpesa without reference", models.PaymentMethodMpesa, "", true},
		{"bank without reference", models.PaymentMethodBank, "", true},
		{"bank with reference", models.PaymentMethodBank, "TRX-99", false},
		{"card without reference", models.PaymentMethodCard, "", true},
		{"unknown method", "cheque", "123", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePaymentMethod(tc.method, tc.reference)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePaymentMethod(%q, %q) error = %v, wantErr %v",
					tc.method, tc.reference, err, tc.wantErr)
			}
			if err != nil {
				if se, ok := AsServiceError(err); !ok || se.Kind != KindValidationError {
					t.Errorf("expected ValidationError, got %v", err)
				}
			}
		})
	}
}
