package services

import (
	"testing"

	"dukahub-backend/models"

	"github.com/google/uuid"
)

func TestReversalPlan(t *testing.T) {
	locA := uuid.New()
	locB := uuid.New()

	cases := []struct {
		name      string
		original  models.InventoryTransaction
		wantType  string
		wantFrom  *uuid.UUID
		wantTo    *uuid.UUID
		wantMoves []stockMove
		wantErr   bool
	}{
		{
			name: "stock in becomes stock out",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeIn,
				Quantity:        10,
				ToLocationID:    &locA,
			},
			wantType:  models.TransactionTypeOut,
			wantFrom:  &locA,
			wantMoves: []stockMove{{locA, -10}},
		},
		{
			name: "stock out becomes stock in",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeOut,
				Quantity:        4,
				FromLocationID:  &locA,
			},
			wantType:  models.TransactionTypeIn,
			wantTo:    &locA,
			wantMoves: []stockMove{{locA, 4}},
		},
		{
			name: "transfer swaps direction",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeTransfer,
				Quantity:        7,
				FromLocationID:  &locA,
				ToLocationID:    &locB,
			},
			wantType:  models.TransactionTypeTransfer,
			wantFrom:  &locB,
			wantTo:    &locA,
			wantMoves: []stockMove{{locB, -7}, {locA, 7}},
		},
		{
			name: "positive adjustment negated",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeAdjustment,
				Quantity:        3,
				ToLocationID:    &locA,
			},
			wantType:  models.TransactionTypeAdjustment,
			wantFrom:  &locA,
			wantMoves: []stockMove{{locA, -3}},
		},
		{
			name: "negative adjustment negated",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeAdjustment,
				Quantity:        3,
				FromLocationID:  &locA,
			},
			wantType:  models.TransactionTypeAdjustment,
			wantTo:    &locA,
			wantMoves: []stockMove{{locA, 3}},
		},
		{
			name: "stock in missing location",
			original: models.InventoryTransaction{
				TransactionType: models.TransactionTypeIn,
				Quantity:        1,
			},
			wantErr: true,
		},
		{
			name: "unknown type",
			original: models.InventoryTransaction{
				TransactionType: "restock",
				Quantity:        1,
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			revType, from, to, moves, err := reversalPlan(&tc.original)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if revType != tc.wantType {
				t.Errorf("type = %q, want %q", revType, tc.wantType)
			}
			if !uuidPtrEqual(from, tc.wantFrom) {
				t.Errorf("from = %v, want %v", from, tc.wantFrom)
			}
			if !uuidPtrEqual(to, tc.wantTo) {
				t.Errorf("to = %v, want %v", to, tc.wantTo)
			}
			if len(moves) != len(tc.wantMoves) {
				t.Fatalf("moves = %v, want %v", moves, tc.wantMoves)
			}
			for i := range moves {
				if moves[i] != tc.wantMoves[i] {
					t.Errorf("move %d = %v, want %v", i, moves[i], tc.wantMoves[i])
				}
			}
		})
	}
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
