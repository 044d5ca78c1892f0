package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestComputeSaleTotals(t *testing.T) {
	variant := uuid.New()
	cases := []struct {
		name         string
		items        []SaleLineInput
		discount     string
		wantSubtotal string
		wantDiscount string
		wantTotal    string
	}{
		{
			name:         "no items",
			items:        nil,
			discount:     "0",
			wantSubtotal: "0",
			wantDiscount: "0",
			wantTotal:    "0",
		},
		{
			name: "no discount",
			items: []SaleLineInput{
				{ProductVariantID: variant, Quantity: 2, UnitPrice: dec("150")},
				{ProductVariantID: variant, Quantity: 1, UnitPrice: dec("99.50")},
			},
			discount:     "0",
			wantSubtotal: "399.5",
			wantDiscount: "0",
			wantTotal:    "399.5",
		},
		{
			name: "tier discount",
			items: []SaleLineInput{
				{ProductVariantID: variant, Quantity: 4, UnitPrice: dec("250")},
			},
			discount:     "10",
			wantSubtotal: "1000",
			wantDiscount: "100",
			wantTotal:    "900",
		},
		{
			name: "fractional discount",
			items: []SaleLineInput{
				{ProductVariantID: variant, Quantity: 3, UnitPrice: dec("33.33")},
			},
			discount:     "5",
			wantSubtotal: "99.99",
			wantDiscount: "4.9995",
			wantTotal:    "94.9905",
		},
		{
			name: "negative quantities for credit notes",
			items: []SaleLineInput{
				{ProductVariantID: variant, Quantity: -2, UnitPrice: dec("100")},
			},
			discount:     "10",
			wantSubtotal: "-200",
			wantDiscount: "-20",
			wantTotal:    "-180",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal, discountAmount, total := ComputeSaleTotals(tc.items, dec(tc.discount))
			if !subtotal.Equal(dec(tc.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", subtotal, tc.wantSubtotal)
			}
			if !discountAmount.Equal(dec(tc.wantDiscount)) {
				t.Errorf("discount = %s, want %s", discountAmount, tc.wantDiscount)
			}
			if !total.Equal(dec(tc.wantTotal)) {
				t.Errorf("total = %s, want %s", total, tc.wantTotal)
			}
			if !subtotal.Sub(discountAmount).Equal(total) {
				t.Errorf("subtotal - discount != total: %s - %s != %s", subtotal, discountAmount, total)
			}
		})
	}
}

func TestSaleNumberPrefixes(t *testing.T) {
	if saleNumberPrefixes["invoice"] != "INV" {
		t.Errorf("invoice prefix = %q, want INV", saleNumberPrefixes["invoice"])
	}
	if saleNumberPrefixes["credit_note"] != "CN" {
		t.Errorf("credit_note prefix = %q, want CN", saleNumberPrefixes["credit_note"])
	}
}
