package domain

import (
	apperrors "github.com/wharfside/marketplace/internal/platform/errors"
)

// Combo groups the items of one order that belong to one seller. It is the
// unit of fulfillment: statuses, delivery, cancellation, and settlement all
// apply per combo.
type Combo struct {
	ID             string
	OrderID        string
	SellerID       string
	Status         Status
	GrandPrice     int64
	DeliveryType   DeliveryType
	TrackingCode   string
	EvidenceImages []string
	CancelReason   string
	CancelledAt    int64
	CreatedAt      int64
	UpdatedAt      int64
	Items          []OrderItem
}

// SplitCombos partitions order items by seller into PENDING combos, each
// priced at the sum of its line totals. Seller order follows first
// appearance in the item list, so output is deterministic for a given
// input ordering. newID supplies combo ids.
func SplitCombos(orderID string, items []OrderItem, now int64, newID func() string) ([]Combo, error) {
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.CodeActionFailed,
			"cannot split an order with no items")
	}

	bySeller := make(map[string]int)
	var combos []Combo
	for i := range items {
		item := &items[i]
		if item.SellerID == "" {
			return nil, apperrors.WithMetadata(apperrors.CodeActionFailed,
				"order item is missing its seller",
				map[string]string{"ProductID": item.ProductID})
		}
		idx, ok := bySeller[item.SellerID]
		if !ok {
			idx = len(combos)
			bySeller[item.SellerID] = idx
			combos = append(combos, Combo{
				ID:        newID(),
				OrderID:   orderID,
				SellerID:  item.SellerID,
				Status:    StatusPending,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		item.ComboID = combos[idx].ID
		combos[idx].GrandPrice += item.LineTotal()
		combos[idx].Items = append(combos[idx].Items, *item)
	}
	return combos, nil
}

// CancellableStatuses reports whether every combo currently permits the
// CANCELLED transition; the first blocker is returned as a validation error.
func CancellableStatuses(combos []Combo) error {
	for _, combo := range combos {
		if !CanTransition(combo.Status, StatusCancelled) {
			return apperrors.WithMetadata(apperrors.CodeComboCancelDisallowed,
				"combo "+combo.ID+" in status "+string(combo.Status)+" cannot be cancelled",
				map[string]string{
					"ComboID": combo.ID,
					"Status":  string(combo.Status),
				})
		}
	}
	return nil
}
