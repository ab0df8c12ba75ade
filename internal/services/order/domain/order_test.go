package domain

import (
	"fmt"
	"testing"

	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

func TestValidateItemRequests(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		err := ValidateItemRequests(nil)
		if apperrors.CodeOf(err) != apperrors.CodeOrderItemsEmpty {
			t.Fatalf("expected empty-items code, got %v", err)
		}
	})

	t.Run("too many", func(t *testing.T) {
		t.Parallel()
		items := make([]ItemRequest, MaxOrderItems+1)
		for i := range items {
			items[i] = ItemRequest{ProductID: fmt.Sprintf("p%d", i), Quantity: 1}
		}
		err := ValidateItemRequests(items)
		if apperrors.CodeOf(err) != apperrors.CodeOrderTooManyItems {
			t.Fatalf("expected too-many-items code, got %v", err)
		}
	})

	t.Run("at limit", func(t *testing.T) {
		t.Parallel()
		items := make([]ItemRequest, MaxOrderItems)
		for i := range items {
			items[i] = ItemRequest{ProductID: fmt.Sprintf("p%d", i), Quantity: 1}
		}
		if err := ValidateItemRequests(items); err != nil {
			t.Fatalf("expected %d items to pass: %v", MaxOrderItems, err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		t.Parallel()
		err := ValidateItemRequests([]ItemRequest{{ProductID: "p1", Quantity: 0}})
		if apperrors.CodeOf(err) != apperrors.CodeOrderQuantityInvalid {
			t.Fatalf("expected quantity code, got %v", err)
		}
	})

	t.Run("duplicate product", func(t *testing.T) {
		t.Parallel()
		err := ValidateItemRequests([]ItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		})
		if apperrors.CodeOf(err) != apperrors.CodeOrderQuantityInvalid {
			t.Fatalf("expected duplicate-product rejection, got %v", err)
		}
	})
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	items := []OrderItem{
		{UnitPrice: 5_000, Quantity: 1},
		{UnitPrice: 3_000, Quantity: 1},
	}
	totals := ComputeTotals(items, DefaultTaxRateBP, 0, DefaultShippingFee)
	if totals.Subtotal != 8_000 {
		t.Fatalf("expected subtotal 8000, got %d", totals.Subtotal)
	}
	if totals.Tax != 800 {
		t.Fatalf("expected tax 800, got %d", totals.Tax)
	}
	if totals.GrandTotal != 9_300 {
		t.Fatalf("expected grand 9300, got %d", totals.GrandTotal)
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	t.Parallel()

	items := []OrderItem{
		{UnitPrice: 1_234, Quantity: 3},
		{UnitPrice: 999, Quantity: 7},
	}
	totals := ComputeTotals(items, DefaultTaxRateBP, 250, DefaultShippingFee)
	want := totals.Subtotal + totals.Tax - totals.Discount + totals.Shipping
	if totals.GrandTotal != want {
		t.Fatalf("grand total %d violates breakdown sum %d", totals.GrandTotal, want)
	}
}

func TestApplyRateHalfUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount int64
		rate   int32
		want   int64
	}{
		{8_000, 1_000, 800},
		{105, 1_000, 11},  // 10.5 rounds up
		{104, 1_000, 10},  // 10.4 rounds down
		{1, 500, 0},       // 0.05 rounds down
		{1, 5_000, 1},     // 0.5 rounds up
		{0, 1_000, 0},
		{1_000, 0, 0},
	}
	for _, tc := range cases {
		if got := ApplyRate(tc.amount, tc.rate); got != tc.want {
			t.Errorf("ApplyRate(%d, %d) = %d, want %d", tc.amount, tc.rate, got, tc.want)
		}
	}
}
